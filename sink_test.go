package ringlog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OpenFile(t *testing.T) {
	t.Run("append", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
		w, err := OpenFile(path)
		require.NoError(t, err)
		_, err = w.Write([]byte("new\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.Equal(t, []string{"old", "new"}, readLines(t, path))
	})
	t.Run("missing_dir", func(t *testing.T) {
		w, err := OpenFile(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"))
		assert.Nil(t, w)
		assert.ErrorIs(t, err, ErrOpenFailed)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func Test_openSink(t *testing.T) {
	fallback := &FakeWriter{}
	t.Run("empty_target", func(t *testing.T) {
		s, err := openSink("", fallback, OpenFile)
		assert.NoError(t, err)
		assert.True(t, s.isFallback())
		assert.Equal(t, fallback, s.w)
	})
	t.Run("opener_error", func(t *testing.T) {
		s, err := openSink("x", fallback, func(string) (io.WriteCloser, error) {
			return nil, errors.New("denied")
		})
		assert.ErrorIs(t, err, ErrOpenFailed)
		assert.Contains(t, err.Error(), "denied")
		assert.True(t, s.isFallback())
		assert.Equal(t, fallback, s.w)
	})
	t.Run("opener_nil_writer", func(t *testing.T) {
		s, err := openSink("x", fallback, func(string) (io.WriteCloser, error) { return nil, nil })
		assert.ErrorIs(t, err, ErrOpenFailed)
		assert.True(t, s.isFallback())
	})
	t.Run("opened", func(t *testing.T) {
		cc := &CloseCounter{}
		s, err := openSink("x", fallback, func(string) (io.WriteCloser, error) { return cc, nil })
		require.NoError(t, err)
		assert.False(t, s.isFallback())
		assert.Equal(t, "x", s.target)
		assert.NoError(t, s.close())
		assert.NoError(t, s.close())
		assert.Equal(t, 1, cc.closed, "target closed twice")
	})
}

func Test_sink_write(t *testing.T) {
	tests := []struct {
		name    string
		w       io.Writer
		wantErr bool
	}{
		{"ok", &FakeWriter{}, false},
		{"error", &ErrorWriter{}, true},
		{"panic", &PanicWriter{}, true},
		{"nil_panic", &NilPanicWriter{}, true},
		{"short", &ShortWriter{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &sink{w: tt.w}
			var err error
			assert.NotPanics(t, func() { _, err = s.write([]byte("payload\n")) })
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWriteFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	t.Run("fallback_never_closed", func(t *testing.T) {
		s := &sink{w: os.Stderr}
		assert.NoError(t, s.close())
		assert.Equal(t, os.Stderr, s.w)
	})
}
