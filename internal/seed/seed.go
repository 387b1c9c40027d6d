// Package seed holds the sample data a fresh install starts with.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/domain/watch"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var embedded []byte

const eventLayout = "2006-01-02 15:04"

// Data is the decoded seed file.
type Data struct {
	Clients       []client.Client             `yaml:"clients"`
	Projects      []project.Project           `yaml:"projects"`
	Operators     []operator.Operator         `yaml:"operators"`
	Collaborators []collaborator.Collaborator `yaml:"collaborators"`
	Events        []eventEntry                `yaml:"events"`
	Reminders     []reminderEntry             `yaml:"reminders"`
	Ideas         []ideaEntry                 `yaml:"ideas"`
	Feeds         []watch.Feed                `yaml:"feeds"`
	Articles      []watch.Article             `yaml:"articles"`
	Messages      []mailbox.Message           `yaml:"messages"`
	MailAccounts  []mailbox.Account           `yaml:"mail_accounts"`
}

type eventEntry struct {
	ID          int64              `yaml:"id"`
	Title       string             `yaml:"title"`
	Description string             `yaml:"description"`
	Start       string             `yaml:"start"`
	End         string             `yaml:"end"`
	ProjectID   *int64             `yaml:"project_id"`
	OperatorIDs []int64            `yaml:"operator_ids"`
	Type        calendar.EventType `yaml:"type"`
	Completed   bool               `yaml:"completed"`
}

type reminderEntry struct {
	Title    string            `yaml:"title"`
	Message  string            `yaml:"message"`
	DueIn    time.Duration     `yaml:"due_in"`
	Category reminder.Category `yaml:"category"`
	EntityID *int64            `yaml:"entity_id"`
}

type ideaEntry struct {
	ID          int64    `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Niche       string   `yaml:"niche"`
	VideoLink   string   `yaml:"video_link"`
	Tags        []string `yaml:"tags"`
	CreatedAt   string   `yaml:"created_at"`
}

// Load decodes the embedded seed file.
func Load() (*Data, error) {
	return Parse(embedded)
}

// Parse decodes a seed file.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	for i := range d.Projects {
		if d.Projects[i].OperatorIDs == nil {
			d.Projects[i].OperatorIDs = []int64{}
		}
	}
	return &d, nil
}

// CalendarEvents converts the seed events, reading wall-clock times in loc.
func (d *Data) CalendarEvents(loc *time.Location) ([]calendar.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	out := make([]calendar.Event, 0, len(d.Events))
	for _, e := range d.Events {
		start, err := time.ParseInLocation(eventLayout, e.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("seed event %d start: %w", e.ID, err)
		}
		ev := calendar.Event{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Start:       start,
			ProjectID:   e.ProjectID,
			OperatorIDs: e.OperatorIDs,
			Type:        e.Type,
			Completed:   e.Completed,
		}
		if ev.OperatorIDs == nil {
			ev.OperatorIDs = []int64{}
		}
		if e.End != "" {
			end, err := time.ParseInLocation(eventLayout, e.End, loc)
			if err != nil {
				return nil, fmt.Errorf("seed event %d end: %w", e.ID, err)
			}
			ev.End = &end
		}
		out = append(out, ev)
	}
	return out, nil
}

// ReminderRequests returns the seed reminders, due relative to now.
func (d *Data) ReminderRequests(now time.Time) []reminder.AddRequest {
	out := make([]reminder.AddRequest, 0, len(d.Reminders))
	for _, r := range d.Reminders {
		out = append(out, reminder.AddRequest{
			Title:    r.Title,
			Message:  r.Message,
			Due:      now.Add(r.DueIn),
			Category: r.Category,
			EntityID: r.EntityID,
		})
	}
	return out
}

// IdeaBank converts the seed ideas. Creation dates are midnight UTC.
func (d *Data) IdeaBank() ([]idea.Idea, error) {
	out := make([]idea.Idea, 0, len(d.Ideas))
	for _, i := range d.Ideas {
		created, err := time.Parse(time.DateOnly, i.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("seed idea %d created_at: %w", i.ID, err)
		}
		tags := i.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, idea.Idea{
			ID:          i.ID,
			Title:       i.Title,
			Description: i.Description,
			Niche:       i.Niche,
			VideoLink:   i.VideoLink,
			Tags:        tags,
			CreatedAt:   created,
		})
	}
	return out, nil
}
