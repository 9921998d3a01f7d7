package sessions

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeTokens struct {
	calls int32
	err   error
}

func (f *fakeTokens) DeleteExpired(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("cleanup must run with a deadline")
	}
	atomic.AddInt32(&f.calls, 1)
	return f.err
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ok", nil},
		{"repository error is logged", errors.New("redis down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{err: tt.err}
			c := NewCleaner(zap.NewNop().Sugar(), tokens, time.Minute)

			c.cleanup()

			if got := atomic.LoadInt32(&tokens.calls); got != 1 {
				t.Errorf("DeleteExpired called %d times, want 1", got)
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	tokens := &fakeTokens{}
	c := NewCleaner(zap.NewNop().Sugar(), tokens, time.Second)

	c.Start()
	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&tokens.calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	c.Stop()

	if atomic.LoadInt32(&tokens.calls) == 0 {
		t.Error("cleanup never ran")
	}
}
