package reminder

import "context"

// Notifier delivers due reminders to whoever is listening.
type Notifier interface {
	NotifyReminder(ctx context.Context, r Reminder, label string) error
}
