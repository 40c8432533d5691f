package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"folio/internal/util"
	"folio/pkg/api"
)

// WritePrettyProject renders a single project with markdown formatting
// using glamour. The description is already markdown; metadata is
// composed into a small header block.
func WritePrettyProject(w io.Writer, p api.Project, style string, width int) error {
	if style == "" {
		style = "dracula"
	}
	if width <= 0 {
		width = 80
	}

	var links []string
	for _, l := range p.Links {
		label := l.Label
		if label == "" {
			label = l.URL
		}
		links = append(links, fmt.Sprintf("[%s](%s)", label, l.URL))
	}

	md := fmt.Sprintf(`# %s

> **ID:** %s | **Date:** %s | **Flags:** %s
>
> **Tags:** %s

%s

%s
`, p.Title, p.ID, util.DisplayDate(p.Date), Flags(p), joinTags(p.Tags),
		strings.TrimSpace(p.Description), strings.Join(links, " · "))

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
