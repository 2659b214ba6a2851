package ringlog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LogClient_Lvl(t *testing.T) {
	lc := New().NewClient()
	assert.Equal(t, LVL_INFO, lc.curLevel, "wrong default level")
	for level := range LogLevel(255) {
		assert.Equal(t, lc, lc.Lvl(level), "result is another client")
		assert.Equal(t, level, lc.curLevel, fmt.Sprintf("Fail on %d", level))
	}
}

func Test_LogClient_Write(t *testing.T) {
	out := &FakeWriter{}
	l := New()
	cfg := testConfig(out)
	cfg.MinLevel = LVL_INFO
	l.ConfigureWith(cfg)
	defer l.Shutdown()
	lc := l.NewClient()

	prep := func() {
		out.Clear()
	}

	t.Run("fprintf", func(t *testing.T) {
		prep()
		n, err := fmt.Fprintf(lc.Lvl(LVL_WARN), "disk low: %d%%", 5)
		assert.NoError(t, err)
		assert.Equal(t, len("disk low: 5%"), n)
		assert.Equal(t, fixedStamp+" [WARN] [Thread:0] disk low: 5%\n", out.String())
	})
	t.Run("trailing_newlines", func(t *testing.T) {
		prep()
		n, err := fmt.Fprintln(lc.Lvl(LVL_ERROR), "with newline")
		assert.NoError(t, err)
		assert.Equal(t, len("with newline\n"), n)
		assert.Equal(t, fixedStamp+" [ERROR] [Thread:0] with newline\n", out.String())
	})
	t.Run("filtered", func(t *testing.T) {
		prep()
		n, err := lc.Lvl(LVL_DEBUG).Write([]byte("quiet"))
		assert.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Empty(t, out.String())
	})
	t.Run("empty", func(t *testing.T) {
		prep()
		for _, p := range [][]byte{nil, {}} {
			n, err := lc.Write(p)
			assert.NoError(t, err)
			assert.Zero(t, n)
		}
		assert.Empty(t, out.String())
	})
	t.Run("not_configured", func(t *testing.T) {
		n, err := New().NewClient().Write([]byte(testlogstr))
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Zero(t, n)
	})
}
