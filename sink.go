package ringlog

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Opener opens a sink target for appending. OpenFile is used unless the
// configuration provides another one.
type Opener func(target string) (io.WriteCloser, error)

// OpenFile opens (creating if needed) a plain text file in append mode.
func OpenFile(target string) (io.WriteCloser, error) {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, DEFAULT_FILE_MODE)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpenFailed, target, err)
	}
	return f, nil
}

// sink is the destination of formatted lines: either an opened target or
// the fallback stream. The fallback is never closed by the logger.
type sink struct {
	w      io.Writer
	closer io.Closer // nil for the fallback stream
	target string
}

// openSink opens target or, when target is empty, wraps the fallback.
// On open failure the returned sink is the fallback and err tells why.
func openSink(target string, fallback io.Writer, open Opener) (*sink, error) {
	if target == "" {
		return &sink{w: fallback}, nil
	}
	wc, err := open(target)
	if err == nil && wc == nil {
		err = errors.New("opener returned nil writer")
	}
	if err != nil {
		if !errors.Is(err, ErrOpenFailed) {
			err = fmt.Errorf("%w %q: %w", ErrOpenFailed, target, err)
		}
		return &sink{w: fallback}, err
	}
	return &sink{w: wc, closer: wc, target: target}, nil
}

func (s *sink) isFallback() bool {
	return s.closer == nil
}

// write performs one blocking write. Panics raised by the underlying writer
// are turned into errors; a short write without error counts as a failure.
func (s *sink) write(p []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic%s", ErrWriteFailed, panicDesc(r))
		}
	}()
	n, err = s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil && !errors.Is(err, ErrWriteFailed) {
		err = fmt.Errorf("%w (%d of %d bytes written): %w", ErrWriteFailed, n, len(p), err)
	}
	return n, err
}

// close releases an opened target. Calling it again, or on the fallback,
// does nothing.
func (s *sink) close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	s.w = io.Discard
	return err
}
