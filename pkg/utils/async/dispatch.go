package async

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/utils/errutil"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine. The handler gets a background context
// carrying the caller's logger, so it outlives the request that started it.
// Errors and panics are logged and reported; they never reach the caller.
// The returned channel is closed when the handler has finished.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) <-chan struct{} {
	logger := logging.From(ctx).With("task", name)
	bgCtx := logging.With(context.Background(), logger)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New("panic in async task", goerr.V("panic", fmt.Sprint(r)))
				_ = errutil.Handle(bgCtx, err, "async task panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async task failed")
		}
	}()

	return done
}
