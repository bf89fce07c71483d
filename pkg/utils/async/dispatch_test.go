package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/utils/async"
)

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("async task did not finish")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler after caller context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var called atomic.Bool
		var ctxErr atomic.Value

		done := async.Dispatch(ctx, "test", func(ctx context.Context) error {
			called.Store(true)
			if err := ctx.Err(); err != nil {
				ctxErr.Store(err)
			}
			return nil
		})
		cancel()
		wait(t, done)

		gt.Bool(t, called.Load()).True()
		gt.Bool(t, ctxErr.Load() == nil).True()
	})

	t.Run("error is swallowed", func(t *testing.T) {
		done := async.Dispatch(context.Background(), "failing", func(ctx context.Context) error {
			return errors.New("failed")
		})
		wait(t, done)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		done := async.Dispatch(context.Background(), "panicking", func(ctx context.Context) error {
			panic("boom")
		})
		wait(t, done)
	})
}
