package ringlog

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Logger_NewClient(t *testing.T) {
	t.Run("sequential_ids", func(t *testing.T) {
		l := New()
		for i := range 10 {
			lc := l.NewClient()
			assert.Equal(t, uint32(i), lc.ID())
			assert.Equal(t, "[Thread:"+strconv.Itoa(i)+"] ", string(lc.tag))
		}
	})
	t.Run("wraps_at_modulo", func(t *testing.T) {
		l := New()
		l.clientID.Store(THREAD_ID_MODULO - 1)
		assert.Equal(t, uint32(THREAD_ID_MODULO-1), l.NewClient().ID())
		assert.Equal(t, uint32(0), l.NewClient().ID())
	})
	t.Run("unique_concurrent", func(t *testing.T) {
		l := New()
		var mu sync.Mutex
		seen := map[uint32]bool{}
		var wg sync.WaitGroup
		for range 100 {
			wg.Go(func() {
				id := l.NewClient().ID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			})
		}
		wg.Wait()
		assert.Len(t, seen, 100)
	})
}

func Test_LogClient_Log(t *testing.T) {
	out := &FakeWriter{}
	l := New()
	cfg := testConfig(out)
	cfg.MinLevel = LVL_INFO
	l.ConfigureWith(cfg)
	defer l.Shutdown()
	l.clientID.Store(17)
	lc := l.NewClient()

	assert.NoError(t, lc.LogDebug("filtered"))
	assert.NoError(t, lc.LogInfo("info"))
	assert.NoError(t, lc.LogWarn("warn"))
	assert.NoError(t, lc.LogError("error"))
	assert.NoError(t, lc.LogCritical("critical"))
	assert.NoError(t, lc.LogErr(errors.New(errorStr)))
	assert.NoError(t, lc.Logf(LVL_INFO, "n=%d", 5))
	assert.NoError(t, lc.LogTemplate(LVL_INFO, "{}+{}", "a", "b"))
	assert.Equal(t, []string{
		fixedStamp + " [INFO] [Thread:17] info",
		fixedStamp + " [WARN] [Thread:17] warn",
		fixedStamp + " [ERROR] [Thread:17] error",
		fixedStamp + " [CRITICAL] [Thread:17] critical",
		fixedStamp + " [ERROR] [Thread:17] " + errorStr,
		fixedStamp + " [INFO] [Thread:17] n=5",
		fixedStamp + " [INFO] [Thread:17] a+b",
	}, out.Lines())
	for _, line := range out.Lines() {
		assert.Regexp(t, lineRegexp, line)
	}
}

func Test_LogClient_SurvivesReconfigure(t *testing.T) {
	out := &FakeWriter{}
	l := New()
	l.ConfigureWith(testConfig(out))
	lc := l.NewClient()
	lc.LogInfo("sync")
	l.Configure("", LVL_DEBUG, true)
	lc.LogInfo("async")
	l.Shutdown()
	require.Len(t, out.Lines(), 2)
	assert.ErrorIs(t, lc.LogInfo("late"), ErrNotConfigured)
}
