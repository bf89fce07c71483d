package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. Nil closers are ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure. Used once a response status has
// already been sent and there is nothing left to report the error to.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write response", slog.Any("error", err))
	}
}
