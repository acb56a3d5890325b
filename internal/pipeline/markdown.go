package pipeline

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"newsproxy/internal/model"
)

// RenderMarkdown lays results out as a headline digest for category.
func RenderMarkdown(category string, results []model.StoryResult) string {
	title := strings.ToUpper(strings.TrimSpace(category))
	if title == "" {
		title = DefaultCategory
	}

	lines := []string{
		fmt.Sprintf("## BLOOMBERG %s NEWS", title),
		"---",
	}
	for _, r := range results {
		lines = append(lines,
			fmt.Sprintf("**%s** | `%s` | [%s](%s)", r.Time, r.Category, r.Headline, r.URL),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// RenderHTML converts a markdown document to an HTML fragment.
func RenderHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	opts := html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}
