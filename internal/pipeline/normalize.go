package pipeline

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"newsproxy/internal/model"
	"newsproxy/pkg/news"
)

const (
	MaxResults      = 20
	DefaultCategory = "NEWS"
)

// Normalize runs the full story pipeline: dedup, recency sort, category
// filter, truncation to limit and mapping to the output schema.
func Normalize(stories []news.Story, category string, limit int) []model.StoryResult {
	stories = Dedupe(stories)
	SortByRecency(stories)
	stories = FilterByCategory(stories, category)

	if limit >= 0 && len(stories) > limit {
		stories = stories[:limit]
	}

	results := make([]model.StoryResult, 0, len(stories))
	for _, s := range stories {
		results = append(results, ToResult(s))
	}
	return results
}

// Dedupe keeps the first story for each identifier. Stories without any
// identifier are dropped.
func Dedupe(stories []news.Story) []news.Story {
	seen := make(map[string]struct{}, len(stories))
	out := make([]news.Story, 0, len(stories))

	for _, s := range stories {
		key := s.Key()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SortByRecency orders stories newest first; missing timestamps sort last.
func SortByRecency(stories []news.Story) {
	slices.SortStableFunc(stories, func(a, b news.Story) int {
		return cmp.Compare(recency(b), recency(a))
	})
}

func recency(s news.Story) int64 {
	if s.Published <= 0 {
		return 0
	}
	return int64(s.Published)
}

// FilterByCategory is a no-op for categories without a synonym list.
func FilterByCategory(stories []news.Story, category string) []news.Story {
	if !IsKnownCategory(category) {
		return stories
	}

	out := make([]news.Story, 0, len(stories))
	for _, s := range stories {
		if MatchesCategory(string(s.PrimarySite), category) {
			out = append(out, s)
		}
	}
	return out
}

func ToResult(s news.Story) model.StoryResult {
	category := strings.ToUpper(strings.TrimSpace(string(s.PrimarySite)))
	if category == "" {
		category = DefaultCategory
	}

	return model.StoryResult{
		Time:      FormatTime(s.Published),
		Headline:  s.DisplayTitle(),
		Category:  category,
		URL:       s.Link(),
		Thumbnail: strings.TrimSpace(string(s.ThumbnailImage)),
	}
}

// FormatTime renders ts as local HH:MM. Zero, negative and out of range
// timestamps yield "".
func FormatTime(ts news.Timestamp) string {
	if ts <= 0 {
		return ""
	}

	t := time.Unix(int64(ts), 0)
	if t.Year() > 9999 {
		return ""
	}
	return t.Format("15:04")
}
