package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultApifyBaseURL   = "https://api.apify.com"
	DefaultArticleTimeout = 120 * time.Second
	PublisherDomain       = "bloomberg.com"
)

// ScrapedArticle is one dataset item produced by the scraping actor.
type ScrapedArticle struct {
	Title    FlexString `json:"title"`
	Subtitle FlexString `json:"subtitle"`
	Author   FlexString `json:"author"`
	Date     FlexString `json:"date"`
	Content  FlexString `json:"content"`
	Images   ImageList  `json:"images"`
	URL      FlexString `json:"url"`
}

// ImageList decodes an images field leniently. String elements are kept,
// object elements contribute their "url", and any other shape yields an
// empty list.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	*l = ImageList{}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	for _, item := range items {
		var src string
		if err := json.Unmarshal(item, &src); err == nil {
			if src = strings.TrimSpace(src); src != "" {
				*l = append(*l, src)
			}
			continue
		}

		var obj struct {
			URL FlexString `json:"url"`
		}
		if err := json.Unmarshal(item, &obj); err == nil {
			if src = strings.TrimSpace(string(obj.URL)); src != "" {
				*l = append(*l, src)
			}
		}
	}
	return nil
}

// ApifyClient runs a scraping actor synchronously and returns its dataset items.
type ApifyClient struct {
	baseURL    string
	actorID    string
	token      string
	httpClient *http.Client
}

func NewApifyClient(baseURL, actorID, token string, timeout time.Duration) *ApifyClient {
	if baseURL == "" {
		baseURL = DefaultApifyBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultArticleTimeout
	}

	return &ApifyClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		actorID:    actorID,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ApifyClient) Name() string {
	return "Apify"
}

func (c *ApifyClient) Scrape(ctx context.Context, articleURL string) ([]ScrapedArticle, error) {
	if c.token == "" {
		return nil, &ConfigurationError{Setting: "APIFY_TOKEN"}
	}
	if c.actorID == "" {
		return nil, &ConfigurationError{Setting: "APIFY_ACTOR_ID"}
	}

	op := "apify " + c.actorID
	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items",
		c.baseURL, url.PathEscape(c.actorID))

	payload, err := json.Marshal(map[string]string{"url": articleURL})
	if err != nil {
		return nil, fmt.Errorf("%s: encode body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(op, c.httpClient.Timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(op, c.httpClient.Timeout, err)
	}

	slog.Info("scrape complete", "source", c.Name(), "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var items []ScrapedArticle
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}

	return items, nil
}

// ValidateArticleURL accepts http(s) URLs on domain or one of its subdomains.
func ValidateArticleURL(raw, domain string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &InvalidInputError{Field: "url", Reason: "url is required"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return &InvalidInputError{Field: "url", Reason: "malformed url"}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidInputError{Field: "url", Reason: "url must use http or https"}
	}

	host := strings.ToLower(u.Hostname())
	domain = strings.ToLower(domain)
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return &InvalidInputError{Field: "url", Reason: "only " + domain + " articles are supported"}
	}

	return nil
}
