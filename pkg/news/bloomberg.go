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
	DefaultBloombergHost = "bloomberg-finance.p.rapidapi.com"
	DefaultNewsTimeout   = 30 * time.Second
)

type BloombergClient struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
}

func NewBloombergClient(baseURL, host, apiKey string, timeout time.Duration) *BloombergClient {
	if host == "" {
		host = DefaultBloombergHost
	}
	if baseURL == "" {
		baseURL = "https://" + host
	}
	if timeout <= 0 {
		timeout = DefaultNewsTimeout
	}

	return &BloombergClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		host:       host,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BloombergClient) Name() string {
	return "Bloomberg"
}

// Get calls path on the upstream API and returns the JSON body of a 2xx response.
func (c *BloombergClient) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	op := "bloomberg " + path

	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: build url: %w", op, err)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

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

	slog.Debug("upstream call", "source", c.Name(), "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &EmptyResponseError{StatusCode: resp.StatusCode}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: response is not valid JSON", op)
	}

	return json.RawMessage(body), nil
}
