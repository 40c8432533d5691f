// Package server serves the rendered portfolio over HTTP: the card
// grid, project pages, feeds, and a JSON view of the catalog.
package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"folio/internal/config"
	"folio/internal/feed"
	"folio/internal/filter"
	"folio/internal/site"
	"folio/internal/source"
	"folio/pkg/api"
)

// Server renders pages on demand from the loaded catalog.
type Server struct {
	cfg      *viper.Viper
	catalog  *source.Catalog
	renderer *site.Renderer
	siteMeta config.Site
	logger   *log.Logger
}

func New(cfg *viper.Viper, catalog *source.Catalog, logger *log.Logger) (*Server, error) {
	siteMeta := config.SiteFromViper(cfg)
	renderer, err := site.NewRenderer(siteMeta)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		renderer: renderer,
		siteMeta: siteMeta,
		logger:   logger,
	}, nil
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/projects/", s.handleProject)
	mux.HandleFunc("/feed.xml", s.handleRSS)
	mux.HandleFunc("/atom.xml", s.handleAtom)
	mux.HandleFunc("/styles.css", s.handleStyles)
	mux.HandleFunc("/api/projects", s.handleAPIProjects)
	return mux
}

// queryFromRequest maps URL parameters onto the catalog query:
// q (text), tag (repeatable, all must match), drafts/archived/private
// toggles.
func (s *Server) queryFromRequest(r *http.Request) api.Query {
	params := r.URL.Query()
	q := api.Query{
		Text:         strings.TrimSpace(params.Get("q")),
		TagsAll:      params["tag"],
		ShowDrafts:   s.cfg.GetBool("show.drafts"),
		ShowArchived: s.cfg.GetBool("show.archived"),
		ShowPrivate:  s.cfg.GetBool("show.private"),
	}
	if v, ok := boolParam(params.Get("drafts")); ok {
		q.ShowDrafts = v
	}
	if v, ok := boolParam(params.Get("archived")); ok {
		q.ShowArchived = v
	}
	if v, ok := boolParam(params.Get("private")); ok {
		q.ShowPrivate = v
	}
	return q
}

func boolParam(v string) (value, ok bool) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderError(w, http.StatusNotFound, "page not found")
		return
	}
	visible := filter.Apply(s.catalog.Projects, s.queryFromRequest(r))

	var buf bytes.Buffer
	if err := s.renderer.Index(&buf, visible); err != nil {
		s.logger.Printf("render index: %v", err)
		s.renderError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	s.serveContent(w, r, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/projects/"), "/")
	if id == "" || strings.Contains(id, "/") {
		s.renderError(w, http.StatusNotFound, "page not found")
		return
	}
	p, err := s.catalog.Get(id)
	if err != nil {
		s.renderError(w, http.StatusNotFound, "no such project: "+id)
		return
	}
	// Flagged projects stay reachable only when the matching toggle is on.
	if len(filter.Apply([]api.Project{p}, s.queryFromRequest(r))) == 0 {
		s.renderError(w, http.StatusNotFound, "no such project: "+id)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Project(&buf, p); err != nil {
		s.logger.Printf("render project %s: %v", id, err)
		s.renderError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	s.serveContent(w, r, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	items := feed.Items(s.siteMeta, s.catalog.Projects, s.cfg.GetInt("feed.max_items"), now)
	doc := feed.BuildRSS(s.siteMeta, items, now)
	s.serveContent(w, r, "application/rss+xml; charset=utf-8", []byte(doc))
}

func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	items := feed.Items(s.siteMeta, s.catalog.Projects, s.cfg.GetInt("feed.max_items"), now)
	doc := feed.BuildAtom(s.siteMeta, items, now)
	s.serveContent(w, r, "application/atom+xml; charset=utf-8", []byte(doc))
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	s.serveContent(w, r, "text/css; charset=utf-8", site.Styles())
}

func (s *Server) handleAPIProjects(w http.ResponseWriter, r *http.Request) {
	visible := filter.Apply(s.catalog.Projects, s.queryFromRequest(r))
	body, err := json.Marshal(visible)
	if err != nil {
		s.logger.Printf("encode projects: %v", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	body = append(body, '\n')
	s.serveContent(w, r, "application/json", body)
}

// serveContent writes body with a BLAKE3-derived ETag and honors
// If-None-Match.
func (s *Server) serveContent(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := `"` + api.HashBytes(body)[:32] + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", contentType)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer
	if err := s.renderer.ErrorPage(&buf, http.StatusText(status), message); err != nil {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
