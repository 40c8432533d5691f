package present

import (
	"context"
	"errors"
	"io"

	"folio/internal/present/format"
	"folio/internal/ui"
	"folio/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
)

type Options struct {
	Mode        Mode
	JSONIndent  bool
	Headers     bool
	PrettyStyle string
	PrettyWidth int
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// RenderProjects renders a filtered project list according to options.
func RenderProjects(ctx context.Context, w io.Writer, projects []api.Project, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONProjects(w, projects, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONProjects(w, projects)
	case ModePlain, ModePretty:
		// Pretty list falls back to the plain table; pretty is per-project.
		return format.WritePlainProjects(w, projects, opts.Headers)
	case ModeTUI:
		return ui.RenderProjectsTable(ctx, w, projects, opts.PrettyStyle, opts.PrettyWidth)
	default:
		return format.WritePlainProjects(w, projects, opts.Headers)
	}
}

// RenderProject renders a single project according to options.
func RenderProject(ctx context.Context, w io.Writer, p api.Project, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONProject(w, p, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONProject(w, p)
	case ModePlain:
		return format.WritePlainProject(w, p, opts.Headers)
	case ModePretty:
		return format.WritePrettyProject(w, p, opts.PrettyStyle, opts.PrettyWidth)
	case ModeTUI:
		return errors.New("tui output not supported for a single project")
	default:
		return format.WritePlainProject(w, p, opts.Headers)
	}
}
