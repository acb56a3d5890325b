package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"newsproxy/internal/model"
	"newsproxy/pkg/news"
)

type fakeSource struct {
	body   string
	err    error
	calls  int
	path   string
	params map[string]string
}

func (f *fakeSource) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	f.calls++
	f.path = path
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.body), nil
}

type fakeScraper struct {
	items []news.ScrapedArticle
	err   error
	calls int
}

func (f *fakeScraper) Scrape(ctx context.Context, articleURL string) ([]news.ScrapedArticle, error) {
	f.calls++
	return f.items, f.err
}

func newTestRouter(source NewsSource, scraper ArticleScraper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	widgets := map[string]model.WidgetDescriptor{
		"bloomberg_news_markets": {Name: "Bloomberg Markets News", Type: model.WidgetTypeTable, Endpoint: "stories/list", WidgetID: "bloomberg_news_markets"},
	}
	return NewRouter(
		NewNewsHandler(source, "http://localhost:6901"),
		NewArticleHandler(scraper, news.PublisherDomain),
		NewStaticHandler(widgets),
	)
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil)
	r.ServeHTTP(w, req)
	return w
}

const modulesPayload = `{"status":true,"data":{"modules":[
	{"stories":[
		{"id":"a","title":"Stocks Rally","published":1700000300,"primarySite":"markets","shortURL":"https://bloom.bg/a"},
		{"id":"b","title":"Chip Stocks Jump","published":1700000200,"primarySite":"technology","shortURL":"https://bloom.bg/b"}
	]},
	{"stories":[
		{"id":"a","title":"Stocks Rally (dup)","published":1700000900,"primarySite":"markets"},
		{"internalID":"c","title":"Bonds Slip","published":0,"primarySite":"markets","longURL":"https://www.bloomberg.com/c"}
	]}
]}}`

func TestGetStories_Normalized(t *testing.T) {
	source := &fakeSource{body: modulesPayload}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list?id=markets")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stories/list", source.path)
	assert.Equal(t, "markets", source.params["id"])

	var res Envelope[model.StoryResult]
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "bloomberg", res.Provider)
	assert.Equal(t, 2, len(res.Results))
	assert.Equal(t, "Stocks Rally", res.Results[0].Headline)
	assert.Equal(t, "MARKETS", res.Results[0].Category)
	assert.Equal(t, "https://bloom.bg/a", res.Results[0].URL)
	assert.Equal(t, "Bonds Slip", res.Results[1].Headline)
	assert.Equal(t, "", res.Results[1].Time)
	assert.Equal(t, "https://www.bloomberg.com/c", res.Results[1].URL)
	assert.Equal(t, "/stories/list", res.Extra.Metadata["route"])
}

func TestGetStories_EnvelopeShape(t *testing.T) {
	source := &fakeSource{body: `{"status":true,"data":[]}`}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "markets", source.params["id"])

	var res map[string]any
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 5, len(res))
	assert.Equal(t, []any{}, res["results"])
	assert.Equal(t, "bloomberg", res["provider"])
	assert.Equal(t, nil, res["warnings"])
	assert.Equal(t, nil, res["chart"])

	_, hasWarnings := res["warnings"]
	_, hasChart := res["chart"]
	assert.Equal(t, true, hasWarnings)
	assert.Equal(t, true, hasChart)

	extra := res["extra"].(map[string]any)
	metadata := extra["metadata"].(map[string]any)
	assert.Equal(t, "/stories/list", metadata["route"])
}

func TestGetStories_TruncatesToTwenty(t *testing.T) {
	var items []string
	for i := 0; i < 35; i++ {
		items = append(items, fmt.Sprintf(`{"id":"s%d","title":"Story %d","published":%d,"primarySite":"markets"}`, i, i, 1700000000+i))
	}
	source := &fakeSource{body: `{"status":true,"data":[` + strings.Join(items, ",") + `]}`}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list?id=markets")

	var res Envelope[model.StoryResult]
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 20, len(res.Results))
	assert.Equal(t, "Story 34", res.Results[0].Headline)
}

func TestGetStories_UpstreamError(t *testing.T) {
	source := &fakeSource{err: &news.UpstreamError{StatusCode: http.StatusServiceUnavailable, Body: "upstream down"}}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list?id=markets")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "upstream down", res.Detail)
}

func TestGetStories_Timeout(t *testing.T) {
	source := &fakeSource{err: &news.TimeoutError{Op: "bloomberg stories/list"}}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStories_MalformedBody(t *testing.T) {
	source := &fakeSource{body: `[1,2,3]`}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetMarkdown(t *testing.T) {
	source := &fakeSource{body: modulesPayload}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/markdown?category=technology")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "technology", source.params["id"])

	var res Envelope[model.MarkdownResult]
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, len(res.Results))

	md := res.Results[0].MarkdownContent
	assert.Equal(t, true, strings.HasPrefix(md, "## BLOOMBERG TECHNOLOGY NEWS\n---\n"))
	assert.Equal(t, true, strings.Contains(md, "| `TECHNOLOGY` | [Chip Stocks Jump](https://bloom.bg/b)"))
	assert.Equal(t, false, strings.Contains(md, "Stocks Rally"))
}

func TestGetMarkdown_Empty(t *testing.T) {
	source := &fakeSource{body: `{"status":true,"data":[]}`}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/markdown")

	var res Envelope[model.MarkdownResult]
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "## BLOOMBERG MARKETS NEWS\n---", res.Results[0].MarkdownContent)
}

func TestGetMarkdown_HTML(t *testing.T) {
	source := &fakeSource{body: modulesPayload}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/markdown?category=markets&format=html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, true, strings.Contains(w.Body.String(), `href="https://bloom.bg/a"`))
}

func TestGetIframe(t *testing.T) {
	source := &fakeSource{}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/iframe")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, source.calls)

	var res Envelope[model.MarkdownResult]
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, strings.Contains(res.Results[0].MarkdownContent, `src="http://localhost:6901/terminal"`))
}

func TestProxy_Passthrough(t *testing.T) {
	tests := []struct {
		target   string
		upstream string
		params   map[string]string
	}{
		{target: "/news/list?id=technology", upstream: "news/list", params: map[string]string{"id": "technology"}},
		{target: "/news/list", upstream: "news/list", params: map[string]string{"id": "markets"}},
		{target: "/news/trending", upstream: "news/list", params: map[string]string{"id": "trending"}},
		{target: "/news/stock?symbol=aapl:us", upstream: "stories/list", params: map[string]string{"id": "aapl:us", "template": "STOCK"}},
		{target: "/market/get-movers", upstream: "market/get-movers", params: map[string]string{"id": "us"}},
		{target: "/news/list-by-region?id=europe", upstream: "news/list-by-region", params: map[string]string{"id": "europe"}},
		{target: "/media/audios-trending", upstream: "media/audios-trending", params: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			source := &fakeSource{body: `{"raw":[1,2,3],"nested":{"k":"v"}}`}
			r := newTestRouter(source, &fakeScraper{})

			w := serve(r, tt.target)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, `{"raw":[1,2,3],"nested":{"k":"v"}}`, w.Body.String())
			assert.Equal(t, tt.upstream, source.path)
			assert.Equal(t, tt.params, source.params)
		})
	}
}

func TestProxy_MissingSymbol(t *testing.T) {
	source := &fakeSource{}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/stock")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, source.calls)
}

func TestProxy_UpstreamStatusPropagated(t *testing.T) {
	source := &fakeSource{err: &news.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: `{"message":"rate limited"}`}}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/market/get-movers?id=asia")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, `{"message":"rate limited"}`, res.Detail)
}

func TestProxy_GenericError(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/trending")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "connection refused", res.Detail)
}

func TestProxy_EmptyUpstreamBody(t *testing.T) {
	source := &fakeSource{err: &news.EmptyResponseError{StatusCode: http.StatusNoContent}}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/media/audios-trending")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestGetStories_EmptyUpstreamBody(t *testing.T) {
	source := &fakeSource{err: &news.EmptyResponseError{StatusCode: http.StatusOK}}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/stories/list?id=markets")

	assert.Equal(t, http.StatusOK, w.Code)
	var res Envelope[model.StoryResult]
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 0, len(res.Results))
}

func TestBlankQueryFallsBackToDefault(t *testing.T) {
	tests := []struct {
		target string
		id     string
	}{
		{target: "/stories/list?id=", id: "markets"},
		{target: "/stories/list?id=%20%20", id: "markets"},
		{target: "/news/list?id=", id: "markets"},
		{target: "/market/get-movers?id=", id: "us"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			source := &fakeSource{body: `{"status":true,"data":[]}`}
			r := newTestRouter(source, &fakeScraper{})

			w := serve(r, tt.target)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.id, source.params["id"])
		})
	}
}

func TestGetMarkdown_BlankCategory(t *testing.T) {
	source := &fakeSource{body: `{"status":true,"data":[]}`}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/markdown?category=")

	assert.Equal(t, "markets", source.params["id"])
	var res Envelope[model.MarkdownResult]
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "## BLOOMBERG MARKETS NEWS\n---", res.Results[0].MarkdownContent)
}

func TestProxy_BlankSymbol(t *testing.T) {
	source := &fakeSource{}
	r := newTestRouter(source, &fakeScraper{})

	w := serve(r, "/news/stock?symbol=")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, source.calls)
}
