package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Scanner periodically pushes reminders that are about to fall due.
type Scanner struct {
	reminders *Service
	notifier  Notifier
	interval  time.Duration
	lead      time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewScanner creates a scanner that checks every interval for reminders due
// within lead.
func NewScanner(reminders *Service, notifier Notifier, interval, lead time.Duration, logger *slog.Logger) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{
		reminders: reminders,
		notifier:  notifier,
		interval:  interval,
		lead:      lead,
		logger:    logger,
		now:       time.Now,
	}
}

// Run scans on every tick until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder scanner started", "interval", s.interval, "lead", s.lead)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scanner stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan notifies every reminder currently due and returns how many were sent.
func (s *Scanner) Scan(ctx context.Context) int {
	now := s.now()
	sent := 0
	for _, r := range s.reminders.Due(now, s.lead) {
		label := DueLabel(r, now)
		if err := s.notifier.NotifyReminder(ctx, r, label); err != nil {
			s.logger.Warn("reminder notification failed", "reminder_id", r.ID, "error", err)
			continue
		}
		s.logger.Info("reminder due", "reminder_id", r.ID, "title", r.Title, "due", label)
		sent++
	}
	return sent
}
