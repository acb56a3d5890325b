package model

// Article is the reader view of a scraped publisher article.
type Article struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
	URL      string   `json:"url"`
}
