package mailbox

// Folder names a mailbox folder. Starred is virtual: it selects starred
// messages from every folder.
type Folder string

const (
	FolderInbox    Folder = "inbox"
	FolderStarred  Folder = "starred"
	FolderSent     Folder = "sent"
	FolderDrafts   Folder = "drafts"
	FolderArchived Folder = "archived"
	FolderTrash    Folder = "trash"
)

// Folders returns every folder in display order.
func Folders() []Folder {
	return []Folder{FolderInbox, FolderStarred, FolderSent, FolderDrafts, FolderArchived, FolderTrash}
}

// Attachment describes a file attached to a message.
type Attachment struct {
	Name string `json:"name" yaml:"name"`
	Size string `json:"size" yaml:"size"`
}

// Message is a read-only mail message.
type Message struct {
	ID          int64        `json:"id" yaml:"id"`
	From        string       `json:"from" yaml:"from"`
	To          string       `json:"to,omitempty" yaml:"to"`
	Cc          string       `json:"cc,omitempty" yaml:"cc"`
	Subject     string       `json:"subject" yaml:"subject"`
	Preview     string       `json:"preview" yaml:"preview"`
	Body        string       `json:"body,omitempty" yaml:"body"`
	Date        string       `json:"date" yaml:"date"`
	Read        bool         `json:"read" yaml:"read"`
	Starred     bool         `json:"starred" yaml:"starred"`
	Folder      Folder       `json:"folder" yaml:"folder"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments"`
}

// HasAttachments reports whether the message carries files.
func (m Message) HasAttachments() bool {
	return len(m.Attachments) > 0
}

// Account is a mail account shown on the settings page. Nothing connects to
// Server; the account only labels where mail would come from.
type Account struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Server   string `json:"server" yaml:"server"`
	Username string `json:"username" yaml:"username"`
}
