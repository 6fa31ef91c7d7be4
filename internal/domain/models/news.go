package models

import "time"

// NewsItem is one headline from a feed.
type NewsItem struct {
	Headline  string     `json:"headline"`
	Source    string     `json:"source"`
	Link      string     `json:"link"`
	Summary   string     `json:"summary"`
	Body      string     `json:"body,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	TimeAgo   string     `json:"time_ago,omitempty"`
}

// NewsResult carries the merged items plus per-source failures.
type NewsResult struct {
	Items  []NewsItem        `json:"items"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Article is the readable text extracted from a news page.
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}
