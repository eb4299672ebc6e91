package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
)

// Close closes a closer and logs the error instead of returning it. Nil
// closers are ignored. For deferred cleanup where the caller has no error
// path left.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data and logs the error instead of returning it. Used for
// response bodies where the status line is already committed.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}
