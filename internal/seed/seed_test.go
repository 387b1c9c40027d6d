package seed

import (
	"testing"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	require.Len(t, d.Clients, 5)
	require.False(t, d.Clients[3].Active)
	require.Len(t, d.Projects, 5)
	require.Equal(t, project.StatusInProgress, d.Projects[0].Status)
	require.Equal(t, []int64{1, 2, 3}, d.Projects[0].OperatorIDs)
	require.Len(t, d.Operators, 3)
	require.Len(t, d.Collaborators, 3)
	require.Equal(t, "3", d.Collaborators[2].ID)
	require.Len(t, d.Feeds, 2)
	require.Len(t, d.MailAccounts, 2)
	require.Equal(t, "imap.gmail.com", d.MailAccounts[1].Server)
	require.Len(t, d.Articles, 3)

	require.Len(t, d.Messages, 7)
	require.Equal(t, mailbox.FolderArchived, d.Messages[5].Folder)
	require.Len(t, d.Messages[0].Attachments, 2)
	require.Contains(t, d.Messages[0].Body, "TechBolt Solutions")
}

func TestCalendarEvents(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	events, err := d.CalendarEvents(rome)
	require.NoError(t, err)
	require.Len(t, events, 3)

	first := events[0]
	require.Equal(t, calendar.TypeMeeting, first.Type)
	require.True(t, time.Date(2025, time.May, 20, 10, 0, 0, 0, rome).Equal(first.Start))
	require.NotNil(t, first.End)
	require.Equal(t, 90*time.Minute, first.End.Sub(first.Start))
	require.True(t, first.LinkedTo(101))

	require.Nil(t, events[1].End)
	require.Equal(t, calendar.TypeDeadline, events[1].Type)
}

func TestReminderRequests(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	now := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	reqs := d.ReminderRequests(now)
	require.Len(t, reqs, 3)
	require.Equal(t, now.Add(30*time.Minute), reqs[0].Due)
	require.Equal(t, reminder.CategoryTask, reqs[0].Category)
	require.Equal(t, now.Add(48*time.Hour), reqs[2].Due)
}

func TestIdeaBank(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	ideas, err := d.IdeaBank()
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	require.Equal(t, time.Date(2024, time.January, 21, 0, 0, 0, 0, time.UTC), ideas[2].CreatedAt)
	require.Empty(t, ideas[2].VideoLink)
	require.Equal(t, []string{"Fitness", "Home Workout", "Tutorial"}, ideas[0].Tags)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("clients: {not: [a list"))
	require.Error(t, err)

	d, err := Parse([]byte("events:\n  - id: 9\n    start: tomorrow\n"))
	require.NoError(t, err)
	_, err = d.CalendarEvents(time.UTC)
	require.Error(t, err)
}
