package reminder

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rpggio/smmdesk/internal/validation"
)

// DefaultSnooze is how far Snooze pushes a reminder when no offset is configured.
const DefaultSnooze = 30 * time.Minute

// Service keeps the reminder list in memory.
type Service struct {
	mu        sync.Mutex
	reminders []Reminder
	snooze    time.Duration
	logger    *slog.Logger
}

// NewService creates an empty reminder list. A non-positive snooze falls
// back to DefaultSnooze.
func NewService(snooze time.Duration, logger *slog.Logger) *Service {
	if snooze <= 0 {
		snooze = DefaultSnooze
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{snooze: snooze, logger: logger}
}

// AddRequest defines reminder creation inputs.
type AddRequest struct {
	Title    string    `json:"title" validate:"notblank"`
	Message  string    `json:"message"`
	Due      time.Time `json:"due" validate:"required"`
	Category Category  `json:"category" validate:"omitempty,oneof=event task project other"`
	EntityID *int64    `json:"entity_id" validate:"omitempty,gt=0"`
}

// Add appends an unread reminder with the next ID.
func (s *Service) Add(_ context.Context, req AddRequest) (*Reminder, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}
	category := req.Category
	if category == "" {
		category = CategoryOther
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := Reminder{
		ID:       s.nextIDLocked(),
		Title:    strings.TrimSpace(req.Title),
		Message:  req.Message,
		Due:      req.Due,
		Category: category,
		EntityID: req.EntityID,
	}
	s.reminders = append(s.reminders, r)
	return &r, nil
}

// List returns every reminder, read or not.
func (s *Service) List(_ context.Context) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reminders)
}

// Active returns unread reminders.
func (s *Service) Active(_ context.Context) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if !r.Read {
			out = append(out, r)
		}
	}
	return out
}

// MarkRead flags a reminder as read.
func (s *Service) MarkRead(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrReminderNotFound
	}
	s.reminders[i].Read = true
	return nil
}

// Remove drops a reminder.
func (s *Service) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrReminderNotFound
	}
	s.reminders = slices.Delete(s.reminders, i, i+1)
	return nil
}

// Snooze replaces an unread reminder with an unread copy due one snooze
// offset later. The copy gets a new ID.
func (s *Service) Snooze(_ context.Context, id int64) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 || s.reminders[i].Read {
		return nil, ErrReminderNotFound
	}

	old := s.reminders[i]
	s.reminders = slices.Delete(s.reminders, i, i+1)

	r := old
	r.ID = s.nextIDLocked()
	r.Due = old.Due.Add(s.snooze)
	r.Read = false
	s.reminders = append(s.reminders, r)

	s.logger.Debug("reminder snoozed", "old_id", old.ID, "new_id", r.ID, "due", r.Due)
	return &r, nil
}

// SnoozeOffset returns the configured snooze offset.
func (s *Service) SnoozeOffset() time.Duration {
	return s.snooze
}

// Due returns unread reminders whose whole-minute distance from now to
// their due time lies within [0, lead].
func (s *Service) Due(now time.Time, lead time.Duration) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	leadMinutes := int64(lead / time.Minute)
	var out []Reminder
	for _, r := range s.reminders {
		if r.Read {
			continue
		}
		diff := minutesUntil(now, r.Due)
		if diff >= 0 && diff <= leadMinutes {
			out = append(out, r)
		}
	}
	return out
}

// DueLabel renders the due time relative to now, e.g. "30 minutes from now"
// or "overdue" once the due time has passed.
func DueLabel(r Reminder, now time.Time) string {
	if minutesUntil(now, r.Due) < 0 {
		return "overdue"
	}
	return humanize.RelTime(r.Due, now, "ago", "from now")
}

func minutesUntil(now, due time.Time) int64 {
	d := due.Sub(now)
	m := int64(d / time.Minute)
	// floor, not truncation toward zero
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return m
}

func (s *Service) indexLocked(id int64) int {
	return slices.IndexFunc(s.reminders, func(r Reminder) bool { return r.ID == id })
}

func (s *Service) nextIDLocked() int64 {
	var max int64
	for _, r := range s.reminders {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}
