// Package site renders the card grid and project pages from embedded
// templates, and writes the static build.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"folio/internal/config"
	"folio/internal/markdown"
	"folio/internal/util"
	"folio/pkg/api"
)

//go:embed templates
var templatesFS embed.FS

// Card is one project prepared for template rendering. The description
// HTML comes from the markdown converter, which escapes everything, so
// marking it template.HTML does not reopen an injection path.
type Card struct {
	Project         api.Project
	DateDisplay     string
	DescriptionHTML template.HTML
	Badges          []string
}

// NewCard derives the render form of a project.
func NewCard(p api.Project) Card {
	var badges []string
	if p.Draft {
		badges = append(badges, "draft")
	}
	if p.Archived {
		badges = append(badges, "archived")
	}
	if p.Private {
		badges = append(badges, "private")
	}
	return Card{
		Project:         p,
		DateDisplay:     util.DisplayDate(p.Date),
		DescriptionHTML: template.HTML(markdown.ToHTML(p.Description)),
		Badges:          badges,
	}
}

type indexData struct {
	Site      config.Site
	PageTitle string
	Cards     []Card
}

type projectData struct {
	Site      config.Site
	PageTitle string
	Card      Card
}

type errorData struct {
	Site      config.Site
	PageTitle string
	Status    string
	Message   string
}

// Renderer executes the embedded page templates for one site.
type Renderer struct {
	site config.Site
	tmpl *template.Template
}

func NewRenderer(site config.Site) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{site: site, tmpl: tmpl}, nil
}

// Index renders the card grid for the given (already filtered) projects.
func (r *Renderer) Index(w io.Writer, projects []api.Project) error {
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, NewCard(p))
	}
	return r.tmpl.ExecuteTemplate(w, "index.html.tmpl", indexData{
		Site:      r.site,
		PageTitle: r.site.Title,
		Cards:     cards,
	})
}

// Project renders a single project page.
func (r *Renderer) Project(w io.Writer, p api.Project) error {
	return r.tmpl.ExecuteTemplate(w, "project.html.tmpl", projectData{
		Site:      r.site,
		PageTitle: p.Title + " · " + r.site.Title,
		Card:      NewCard(p),
	})
}

// ErrorPage renders the single error-display page.
func (r *Renderer) ErrorPage(w io.Writer, status, message string) error {
	return r.tmpl.ExecuteTemplate(w, "error.html.tmpl", errorData{
		Site:      r.site,
		PageTitle: status + " · " + r.site.Title,
		Status:    status,
		Message:   message,
	})
}

// Styles returns the embedded stylesheet.
func Styles() []byte {
	b, err := templatesFS.ReadFile("templates/styles.css")
	if err != nil {
		// The stylesheet ships in the binary; a miss is a packaging bug.
		panic(err)
	}
	return b
}
