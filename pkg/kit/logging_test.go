package kit

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("todo", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("todo", "loud")
	assert.Error(t, err)
}

type syncCounter struct {
	zapcore.Core
	syncs *int
}

func (c syncCounter) Sync() error {
	*c.syncs++
	return c.Core.Sync()
}

func (c syncCounter) With(fields []zapcore.Field) zapcore.Core {
	return syncCounter{Core: c.Core.With(fields), syncs: c.syncs}
}

func (c syncCounter) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func TestFail_FlushesBeforeExit(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	syncs := 0
	log := zap.New(syncCounter{Core: core, syncs: &syncs})

	var code int
	syncsAtExit := -1
	osExit = func(c int) {
		code = c
		syncsAtExit = syncs
	}
	t.Cleanup(func() { osExit = os.Exit })

	Fail(log, "http server stopped", errors.New("listen: address in use"))

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, syncsAtExit)

	entries := logs.FilterMessage("http server stopped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "listen: address in use", entries[0].ContextMap()["error"])
}
