package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingSyncer struct {
	calls atomic.Int32
	err   error
}

func (s *countingSyncer) SyncAll(ctx context.Context) error {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("sweep must run with a deadline")
	}
	return s.err
}

func TestSweep(t *testing.T) {
	syncer := &countingSyncer{err: errors.New("one lot failed")}
	s, err := New(syncer, time.Minute, 0, nopLogger{})
	require.NoError(t, err)

	s.Sweep()

	assert.Equal(t, int32(1), syncer.calls.Load())
	assert.Equal(t, time.Minute, s.timeout)
}

func TestStartStop(t *testing.T) {
	syncer := &countingSyncer{}
	s, err := New(syncer, 20*time.Millisecond, 10*time.Millisecond, nopLogger{})
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Eventually(t, func() bool { return syncer.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}
