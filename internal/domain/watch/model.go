package watch

// Feed is an RSS source shown in the web watch.
type Feed struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Category string `json:"category" yaml:"category"`
}

// Article is a read-only item attributed to a feed by name.
type Article struct {
	ID       int64  `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	FeedName string `json:"feed_name" yaml:"feed_name"`
	Date     string `json:"date" yaml:"date"`
	URL      string `json:"url" yaml:"url"`
	Summary  string `json:"summary" yaml:"summary"`
}

// ArticleFilter narrows Articles. Zero value lists everything.
type ArticleFilter struct {
	Search   string
	Category string
}
