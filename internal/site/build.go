package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"folio/internal/config"
	"folio/internal/feed"
	"folio/internal/filter"
	"folio/pkg/api"
)

// Artifact describes one written build output.
type Artifact struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"` // hex BLAKE3
}

// Manifest lists everything a build wrote.
type Manifest struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Source      string     `json:"source"`
	Artifacts   []Artifact `json:"artifacts"`
}

// BuildOptions control what a static build includes.
type BuildOptions struct {
	OutputDir    string
	Source       string // catalog location, recorded in the manifest
	Query        api.Query
	FeedMaxItems int
	Now          time.Time
}

// Build renders the whole site into opts.OutputDir: the index grid, one
// page per visible project, the stylesheet, both feeds, and a manifest.
// Files are written atomically so a failed build never leaves a partial
// page behind.
func Build(ctx context.Context, site config.Site, projects []api.Project, opts BuildOptions) (*Manifest, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	r, err := NewRenderer(site)
	if err != nil {
		return nil, err
	}

	visible := filter.Apply(projects, opts.Query)
	manifest := &Manifest{GeneratedAt: opts.Now, Source: opts.Source}

	write := func(rel string, content []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Catalogs come from remote URLs; never let a crafted ID place
		// an artifact outside the output dir.
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return fmt.Errorf("build %s: path escapes output dir", rel)
		}
		path := filepath.Join(opts.OutputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("build %s: %w", rel, err)
		}
		if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("build %s: %w", rel, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, Artifact{
			Path:     rel,
			Size:     int64(len(content)),
			Checksum: api.HashBytes(content),
		})
		return nil
	}

	var buf bytes.Buffer
	if err := r.Index(&buf, visible); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	if err := write("index.html", buf.Bytes()); err != nil {
		return nil, err
	}

	for _, p := range visible {
		buf.Reset()
		if err := r.Project(&buf, p); err != nil {
			return nil, fmt.Errorf("render project %s: %w", p.ID, err)
		}
		if err := write("projects/"+p.ID+"/index.html", buf.Bytes()); err != nil {
			return nil, err
		}
	}

	if err := write("styles.css", Styles()); err != nil {
		return nil, err
	}

	items := feed.Items(site, projects, opts.FeedMaxItems, opts.Now)
	if err := write("feed.xml", []byte(feed.BuildRSS(site, items, opts.Now))); err != nil {
		return nil, err
	}
	if err := write("atom.xml", []byte(feed.BuildAtom(site, items, opts.Now))); err != nil {
		return nil, err
	}

	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	mb = append(mb, '\n')
	path := filepath.Join(opts.OutputDir, "manifest.json")
	if err := atomic.WriteFile(path, bytes.NewReader(mb)); err != nil {
		return nil, fmt.Errorf("build manifest.json: %w", err)
	}

	return manifest, nil
}
