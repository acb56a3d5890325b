package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsproxy/internal/model"
	"newsproxy/internal/pipeline"
	"newsproxy/pkg/news"
)

const storiesPath = "stories/list"

type NewsSource interface {
	Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error)
}

type NewsHandler struct {
	source    NewsSource
	publicURL string
}

func NewNewsHandler(source NewsSource, publicURL string) *NewsHandler {
	return &NewsHandler{source: source, publicURL: publicURL}
}

// ProxyRoute forwards an inbound query parameter to an upstream path and
// returns the upstream body untouched.
type ProxyRoute struct {
	Path     string
	Upstream string
	Query    string
	Param    string
	Default  string
	Required bool
	Fixed    map[string]string
}

var proxyRoutes = []ProxyRoute{
	{Path: "/news/list", Upstream: "news/list", Query: "id", Param: "id", Default: "markets"},
	{Path: "/news/trending", Upstream: "news/list", Fixed: map[string]string{"id": "trending"}},
	{Path: "/news/stock", Upstream: storiesPath, Query: "symbol", Param: "id", Required: true, Fixed: map[string]string{"template": "STOCK"}},
	{Path: "/market/get-movers", Upstream: "market/get-movers", Query: "id", Param: "id", Default: "us"},
	{Path: "/news/list-by-region", Upstream: "news/list-by-region", Query: "id", Param: "id", Default: "us"},
	{Path: "/media/audios-trending", Upstream: "media/audios-trending"},
}

func (h *NewsHandler) Proxy(route ProxyRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]string, len(route.Fixed)+1)
		for k, v := range route.Fixed {
			params[k] = v
		}

		if route.Query != "" {
			value := queryOrDefault(c, route.Query, route.Default)
			if value == "" && route.Required {
				c.JSON(http.StatusBadRequest, ErrorResponse{Detail: route.Query + " is required"})
				return
			}
			if value != "" {
				params[route.Param] = value
			}
		}

		body, err := h.source.Get(c.Request.Context(), route.Upstream, params)
		var emptyErr *news.EmptyResponseError
		if errors.As(err, &emptyErr) {
			c.Status(emptyErr.StatusCode)
			return
		}
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

func (h *NewsHandler) GetStories(c *gin.Context) {
	category := queryOrDefault(c, "id", "markets")

	results, err := h.fetchStories(c.Request.Context(), category)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, newEnvelope(results, map[string]any{
		"route":    c.FullPath(),
		"category": category,
		"count":    len(results),
	}))
}

func (h *NewsHandler) GetMarkdown(c *gin.Context) {
	category := queryOrDefault(c, "category", "markets")

	results, err := h.fetchStories(c.Request.Context(), category)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	md := pipeline.RenderMarkdown(category, results)

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", pipeline.RenderHTML(md))
		return
	}

	c.JSON(http.StatusOK, newEnvelope([]model.MarkdownResult{{MarkdownContent: md}}, map[string]any{
		"route":    c.FullPath(),
		"category": category,
		"count":    len(results),
	}))
}

func (h *NewsHandler) GetIframe(c *gin.Context) {
	content := fmt.Sprintf(
		`<iframe src="%s/terminal" width="100%%" height="800" style="border:none;"></iframe>`,
		h.publicURL,
	)

	c.JSON(http.StatusOK, newEnvelope([]model.MarkdownResult{{MarkdownContent: content}}, map[string]any{
		"route": c.FullPath(),
	}))
}

func (h *NewsHandler) fetchStories(ctx context.Context, category string) ([]model.StoryResult, error) {
	body, err := h.source.Get(ctx, storiesPath, map[string]string{"id": category})
	var emptyErr *news.EmptyResponseError
	if errors.As(err, &emptyErr) {
		return []model.StoryResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	stories, err := pipeline.Extract(body)
	if err != nil {
		return nil, err
	}

	results := pipeline.Normalize(stories, category, pipeline.MaxResults)
	slog.Debug("stories normalized", "category", category, "upstream", len(stories), "results", len(results))

	return results, nil
}

// queryOrDefault treats a blank query value like a missing one.
func queryOrDefault(c *gin.Context, key, fallback string) string {
	if value := strings.TrimSpace(c.Query(key)); value != "" {
		return value
	}
	return fallback
}
