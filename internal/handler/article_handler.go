package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsproxy/internal/model"
	"newsproxy/pkg/news"
)

type ArticleScraper interface {
	Scrape(ctx context.Context, articleURL string) ([]news.ScrapedArticle, error)
}

type ArticleHandler struct {
	scraper ArticleScraper
	domain  string
}

func NewArticleHandler(scraper ArticleScraper, domain string) *ArticleHandler {
	if domain == "" {
		domain = news.PublisherDomain
	}
	return &ArticleHandler{scraper: scraper, domain: domain}
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	articleURL := c.Query("url")

	if err := news.ValidateArticleURL(articleURL, h.domain); err != nil {
		respondError(c, err, http.StatusGatewayTimeout)
		return
	}

	items, err := h.scraper.Scrape(c.Request.Context(), articleURL)
	if err != nil {
		respondError(c, err, http.StatusGatewayTimeout)
		return
	}

	if len(items) == 0 {
		c.JSON(http.StatusOK, ArticleResponse{Success: false, Error: "No content returned"})
		return
	}

	c.JSON(http.StatusOK, ArticleResponse{Success: true, Article: toArticle(items[0])})
}

func toArticle(item news.ScrapedArticle) *model.Article {
	images := []string(item.Images)
	if images == nil {
		images = []string{}
	}

	return &model.Article{
		Title:    string(item.Title),
		Subtitle: string(item.Subtitle),
		Author:   string(item.Author),
		Date:     string(item.Date),
		Content:  string(item.Content),
		Images:   images,
		URL:      string(item.URL),
	}
}
