package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
	// hand-edited catalog; comments and trailing commas are fine
	{
		"id": "ledger",
		"title": "Plain Text Ledger",
		"date": "2022-11",
		"tags": ["cli", "go"],
	},
	{
		"id": "orrery",
		"title": "Solar System Orrery",
		"date": "2024-03-01",
		"description": "# Orrery\n\nplanets in the browser",
		"links": [{"url": "https://example.com/orrery", "label": "Demo"}],
		"images": ["img/orrery.png", {"src": "img/detail.png", "alt": "close up"}],
	},
	{
		"id": "notes",
		"title": "Undated Notes",
	},
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	cat, err := Load(context.Background(), writeCatalog(t, sampleCatalog), 0)
	require.NoError(t, err)
	require.Len(t, cat.Projects, 3)

	// Descending by date, undated last.
	assert.Equal(t, []string{"orrery", "ledger", "notes"}, cat.IDs())

	orrery, err := cat.Get("orrery")
	require.NoError(t, err)
	assert.Equal(t, "close up", orrery.Images[1].Alt)
	assert.Equal(t, "img/orrery.png", orrery.Images[0].Src)
}

func TestLoadWrapperObject(t *testing.T) {
	cat, err := Load(context.Background(), writeCatalog(t, `{"projects": [{"id": "a", "title": "A"}]}`), 0)
	require.NoError(t, err)
	require.Len(t, cat.Projects, 1)
}

func TestLoadFromHTTP(t *testing.T) {
	var gotCacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	cat, err := Load(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Len(t, cat.Projects, 3)
	assert.Equal(t, "no-cache", gotCacheControl, "catalog fetch must disable HTTP caching")
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL, 5*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name    string
		catalog string
		wantErr string
	}{
		{"missing id", `[{"title": "X"}]`, "missing id"},
		{"missing title", `[{"id": "x"}]`, "missing title"},
		{"duplicate id", `[{"id": "x", "title": "A"}, {"id": "x", "title": "B"}]`, "duplicate id"},
		{"empty link url", `[{"id": "x", "title": "A", "links": [{"url": ""}]}]`, "empty url"},
		{"id with slash", `[{"id": "a/b", "title": "A"}]`, "path separators"},
		{"id with backslash", `[{"id": "a\\b", "title": "A"}]`, "path separators"},
		{"id with dot-dot", `[{"id": "../../escape", "title": "A"}]`, "path separators"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeCatalog(t, c.catalog), 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(context.Background(), writeCatalog(t, `[{"id": }`), 0)
	require.Error(t, err)
}

func TestGetNotFound(t *testing.T) {
	cat := &Catalog{}
	_, err := cat.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSortStableForTies(t *testing.T) {
	cat, err := Load(context.Background(), writeCatalog(t, `[
		{"id": "b", "title": "B", "date": "2024-01-01"},
		{"id": "a", "title": "A", "date": "2024-01-01"},
		{"id": "z", "title": "Z", "date": "bad date"}
	]`), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "z"}, cat.IDs())
}

func TestEmptyCatalogIsValid(t *testing.T) {
	cat, err := Load(context.Background(), writeCatalog(t, `[]`), 0)
	require.NoError(t, err)
	assert.Empty(t, cat.Projects)
}
