package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/source"
	"folio/pkg/api"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := viper.New()
	cfg.Set("site.title", "My Work")
	cfg.Set("site.base_url", "https://example.com")
	cfg.Set("feed.max_items", 50)

	catalog := &source.Catalog{
		Projects: []api.Project{
			{ID: "orrery", Title: "Solar System Orrery", Date: "2024-03-01", Description: "planets", Tags: []string{"webgl"}},
			{ID: "ledger", Title: "Plain Text Ledger", Date: "2022-11", Tags: []string{"cli"}},
			{ID: "wip", Title: "Secret WIP", Draft: true},
		},
		Location: "projects.json",
		LoadedAt: time.Now(),
	}

	srv, err := New(cfg, catalog, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestIndexHidesDrafts(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("article.card").Length())
	assert.NotContains(t, body, "Secret WIP")
}

func TestIndexQueryParams(t *testing.T) {
	ts := testServer(t)

	_, body := get(t, ts.URL+"/?drafts=1")
	assert.Contains(t, body, "Secret WIP")

	_, body = get(t, ts.URL+"/?q=ledger")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("article.card").Length())

	_, body = get(t, ts.URL+"/?tag=webgl")
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("article.card").Length())
	assert.Contains(t, body, "Orrery")
}

func TestProjectPageAndNotFound(t *testing.T) {
	ts := testServer(t)

	resp, body := get(t, ts.URL+"/projects/orrery/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Solar System Orrery")

	resp, body = get(t, ts.URL+"/projects/missing/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "no such project")

	// Draft page is hidden until the toggle is on.
	resp, _ = get(t, ts.URL+"/projects/wip/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/projects/wip/?drafts=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFeedEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := get(t, ts.URL+"/feed.xml")
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	parsed, err := gofeed.NewParser().ParseString(body)
	require.NoError(t, err)
	assert.Len(t, parsed.Items, 2, "drafts never appear in feeds")

	resp, body = get(t, ts.URL+"/atom.xml")
	assert.Equal(t, "application/atom+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	parsed, err = gofeed.NewParser().ParseString(body)
	require.NoError(t, err)
	assert.Len(t, parsed.Items, 2)
}

func TestAPIProjects(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts.URL+"/api/projects?tag=cli")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var projects []api.Project
	require.NoError(t, json.Unmarshal([]byte(body), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "ledger", projects[0].ID)
}

func TestETagNotModified(t *testing.T) {
	ts := testServer(t)

	resp, _ := get(t, ts.URL+"/styles.css")
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/styles.css", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestUnknownPathRendersErrorPage(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Not Found", doc.Find(".error h2").Text())
}
