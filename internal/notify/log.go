package notify

import (
	"context"
	"log/slog"

	"github.com/rpggio/smmdesk/internal/domain/reminder"
)

// LogNotifier writes due reminders to the log. It serves the stdio
// transport, which has no websocket clients.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogNotifier{logger: logger}
}

// NotifyReminder implements reminder.Notifier.
func (n *LogNotifier) NotifyReminder(ctx context.Context, r reminder.Reminder, label string) error {
	n.logger.InfoContext(ctx, "reminder notice",
		"reminder_id", r.ID,
		"title", r.Title,
		"message", r.Message,
		"category", string(r.Category),
		"due", label,
	)
	return nil
}
