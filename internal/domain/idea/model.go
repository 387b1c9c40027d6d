package idea

import "time"

// Idea is a content idea kept in the idea bank.
type Idea struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Niche       string    `json:"niche"`
	VideoLink   string    `json:"video_link,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}
