package model

// StoryResult is one row of a normalized story listing.
type StoryResult struct {
	Time      string `json:"time"`
	Headline  string `json:"headline"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

type MarkdownResult struct {
	MarkdownContent string `json:"markdown_content"`
}
