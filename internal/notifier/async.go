package notifier

import (
	"context"
	"log/slog"
	"time"
)

// sendTimeout is the max time allowed for a single async delivery.
const sendTimeout = 30 * time.Second

// SendAsync delivers msg in a goroutine so enrollment latency is independent
// of outbound-mail latency or failure. Delivery failure must not roll back the
// state change that preceded it: it is logged and reported through onErr
// (which may be nil), never returned to the caller.
//
// The goroutine uses context.Background() with sendTimeout so request
// cancellation does not abort an in-flight delivery.
func SendAsync(m Mailer, msg Message, logger *slog.Logger, onErr func(error)) {
	if m == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil {
			if logger != nil {
				logger.Error("welcome mail delivery failed", "to", msg.To, "error", err)
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}()
}
