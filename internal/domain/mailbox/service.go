package mailbox

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Service is a read-only view over a fixed set of messages. It never talks
// to a mail server.
type Service struct {
	messages []Message
}

// NewService creates a mailbox over messages.
func NewService(messages []Message) *Service {
	return &Service{messages: slices.Clone(messages)}
}

// List returns the messages in folder whose subject or sender contains search.
func (s *Service) List(_ context.Context, folder Folder, search string) ([]Message, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := []Message{}
	for _, m := range s.messages {
		if !inFolder(m, folder) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Subject), search) &&
			!strings.Contains(strings.ToLower(m.From), search) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Get fetches a message by ID.
func (s *Service) Get(_ context.Context, id int64) (*Message, error) {
	for _, m := range s.messages {
		if m.ID == id {
			m.Attachments = slices.Clone(m.Attachments)
			return &m, nil
		}
	}
	return nil, ErrMessageNotFound
}

// UnreadCount counts unread messages in folder.
func (s *Service) UnreadCount(_ context.Context, folder Folder) (int, error) {
	if err := checkFolder(folder); err != nil {
		return 0, err
	}
	n := 0
	for _, m := range s.messages {
		if inFolder(m, folder) && !m.Read {
			n++
		}
	}
	return n, nil
}

func inFolder(m Message, folder Folder) bool {
	if folder == FolderStarred {
		return m.Starred
	}
	return m.Folder == folder
}

func checkFolder(folder Folder) error {
	if slices.Contains(Folders(), folder) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFolder, folder)
}
