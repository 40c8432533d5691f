// Package source loads the project catalog from a local file or an HTTP
// URL. The document is JSON, optionally with comments and trailing
// commas (HuJSON); it is fetched once per invocation and kept in memory.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"folio/internal/util"
	"folio/pkg/api"
)

var ErrNotFound = errors.New("project not found")

// Catalog is the loaded, ordered project collection. Immutable after
// Load; every view is derived from Projects without mutation.
type Catalog struct {
	Projects []api.Project
	Location string
	LoadedAt time.Time
}

// Get returns the project with the given ID.
func (c *Catalog) Get(id string) (api.Project, error) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return api.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// IDs returns the project IDs in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.Projects))
	for i, p := range c.Projects {
		out[i] = p.ID
	}
	return out
}

// Load reads the catalog from location (file path or http(s) URL),
// validates it, and sorts it descending by date.
func Load(ctx context.Context, location string, timeout time.Duration) (*Catalog, error) {
	data, err := read(ctx, location, timeout)
	if err != nil {
		return nil, err
	}
	projects, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	if err := Validate(projects); err != nil {
		return nil, fmt.Errorf("validate %s: %w", location, err)
	}
	Sort(projects)
	return &Catalog{Projects: projects, Location: location, LoadedAt: time.Now().UTC()}, nil
}

func read(ctx context.Context, location string, timeout time.Duration) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return fetch(ctx, location, timeout)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return data, nil
}

// fetch performs the single catalog GET with HTTP caching disabled.
func fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: %s returned %s", rawURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return data, nil
}

// Parse decodes the catalog document. Accepts a bare array of projects
// or a wrapper object {"projects": [...]}, in JSON or HuJSON form.
func Parse(data []byte) ([]api.Project, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	trimmed := strings.TrimSpace(string(standardized))
	if strings.HasPrefix(trimmed, "{") {
		var doc struct {
			Projects []api.Project `json:"projects"`
		}
		if err := json.Unmarshal(standardized, &doc); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		return doc.Projects, nil
	}

	var projects []api.Project
	if err := json.Unmarshal(standardized, &projects); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return projects, nil
}

// Validate checks the catalog invariants: IDs present, path-safe, and
// unique, titles present, link URLs parseable. The first problem
// aborts the load.
func Validate(projects []api.Project) error {
	seen := make(map[string]struct{}, len(projects))
	for i, p := range projects {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("project %d: missing id", i)
		}
		// IDs become URL routes and output subdirectories; a separator
		// or dot-dot segment would let a fetched catalog write outside
		// the output dir.
		if strings.ContainsAny(p.ID, `/\`) || strings.Contains(p.ID, "..") {
			return fmt.Errorf("project %q: id must not contain path separators or %q", p.ID, "..")
		}
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("project %q: missing title", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("project %q: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, l := range p.Links {
			if strings.TrimSpace(l.URL) == "" {
				return fmt.Errorf("project %q: link with empty url", p.ID)
			}
			if _, err := url.Parse(l.URL); err != nil {
				return fmt.Errorf("project %q: bad link url %q: %w", p.ID, l.URL, err)
			}
		}
	}
	return nil
}

// Sort orders projects descending by parsed date. Undated (or
// unparseable) projects sort after all dated ones; ties keep input
// order.
func Sort(projects []api.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		ti, erri := util.ParseProjectDate(projects[i].Date)
		tj, errj := util.ParseProjectDate(projects[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
}
