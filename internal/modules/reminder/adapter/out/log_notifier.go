package out

import (
	"context"
	"log/slog"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	"jadwal/internal/platform/logging"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) reminderout.Notifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogNotifier{logger: logger.With("sink", "log")}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Ready(context.Context) error { return nil }

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	n.logger.InfoContext(ctx, notification.Title, "body", notification.Body, "key", notification.DedupKey)
	return nil
}
