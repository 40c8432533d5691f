package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/config"
	"folio/pkg/api"
)

var testSite = config.Site{
	Title:       "My Work",
	Description: "Selected projects",
	BaseURL:     "https://example.com",
	Language:    "en",
	Author:      "J. Doe",
}

func testProjects() []api.Project {
	return []api.Project{
		{ID: "orrery", Title: "Solar System Orrery", Date: "2024-03-01", Description: "# Orrery\n\nplanets & moons"},
		{ID: "ledger", Title: "Plain Text Ledger", Date: "2022-11", Links: []api.Link{{URL: "https://example.org/ledger"}}},
		{ID: "wip", Title: "Secret WIP", Draft: true},
		{ID: "notes", Title: "Undated Notes"},
	}
}

func TestItemsExcludeHiddenProjects(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	items := Items(testSite, testProjects(), 50, now)
	require.Len(t, items, 3, "draft project must not appear in the feed")
	assert.Equal(t, "Solar System Orrery", items[0].Title)
	assert.Equal(t, "https://example.com/projects/orrery/", items[0].Link)
	assert.Equal(t, now, items[2].PublishedAt, "undated project falls back to generation time")
}

func TestItemsMaxCap(t *testing.T) {
	items := Items(testSite, testProjects(), 1, time.Now())
	require.Len(t, items, 1)
}

func TestRSSRoundTripsThroughGofeed(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	items := Items(testSite, testProjects(), 50, now)
	doc := BuildRSS(testSite, items, now)

	parsed, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err, "generated RSS must be parseable")
	assert.Equal(t, "My Work", parsed.Title)
	assert.Equal(t, "Selected projects", parsed.Description)
	require.Len(t, parsed.Items, 3)
	assert.Equal(t, "Solar System Orrery", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/projects/orrery/", parsed.Items[0].Link)
	require.NotNil(t, parsed.Items[0].PublishedParsed)
	assert.Equal(t, 2024, parsed.Items[0].PublishedParsed.Year())
	// The description carries the converted markdown HTML.
	assert.Contains(t, parsed.Items[0].Description, "<h1>Orrery</h1>")
	assert.Contains(t, parsed.Items[0].Description, "planets &amp; moons")
}

func TestAtomRoundTripsThroughGofeed(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	items := Items(testSite, testProjects(), 50, now)
	doc := BuildAtom(testSite, items, now)

	parsed, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err, "generated Atom must be parseable")
	assert.Equal(t, "My Work", parsed.Title)
	require.Len(t, parsed.Items, 3)
	assert.Equal(t, "https://example.com/projects/orrery/", parsed.Items[0].Link)
}

func TestFeedEscapesHostileContent(t *testing.T) {
	hostile := []api.Project{{
		ID:          "xss",
		Title:       `"></title><script>alert(1)</script>`,
		Description: "<b>not markdown</b> & ]]>",
	}}
	now := time.Now()
	doc := BuildRSS(testSite, Items(testSite, hostile, 50, now), now)

	assert.NotContains(t, doc, "<script>")
	_, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err, "feed must stay well-formed for hostile input")
}

func TestEmptyCatalogFeed(t *testing.T) {
	now := time.Now()
	doc := BuildRSS(testSite, nil, now)
	parsed, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
}

func TestFeedWithoutBaseURLFallsBackToProjectLink(t *testing.T) {
	site := config.Site{Title: "t"}
	items := Items(site, testProjects(), 50, time.Now())
	require.NotEmpty(t, items)
	// ledger has an explicit link; with no base URL it is used directly.
	var ledger *Item
	for i := range items {
		if items[i].Title == "Plain Text Ledger" {
			ledger = &items[i]
		}
	}
	require.NotNil(t, ledger)
	assert.Equal(t, "https://example.org/ledger", ledger.Link)
	assert.True(t, strings.HasPrefix(items[0].GUID, "http://localhost/"), "guid falls back to localhost base")

	// A project with neither a base URL nor its own links points at the
	// channel link.
	var notes *Item
	for i := range items {
		if items[i].Title == "Undated Notes" {
			notes = &items[i]
		}
	}
	require.NotNil(t, notes)
	assert.Equal(t, baseURLWithFallback(site.BaseURL), notes.Link)
}
