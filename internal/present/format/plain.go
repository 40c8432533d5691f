package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"folio/internal/util"
	"folio/pkg/api"
)

// TSV columns: id, title, date, tags, flags
var headerLine = "id\ttitle\tdate\ttags\tflags\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	// Join with commas; no spaces
	var b strings.Builder
	for i, t := range tags {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t)
	}
	return b.String()
}

// Flags renders the visibility flags as a compact marker string,
// "-" when the project is fully public.
func Flags(p api.Project) string {
	var b strings.Builder
	if p.Draft {
		b.WriteByte('d')
	}
	if p.Archived {
		b.WriteByte('a')
	}
	if p.Private {
		b.WriteByte('p')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func writePlainLine(tw io.Writer, p api.Project) {
	line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\n",
		esc(p.ID), esc(p.Title), esc(util.DisplayDate(p.Date)), esc(joinTags(p.Tags)), Flags(p))
	_, _ = io.WriteString(tw, line)
}

func WritePlainProjects(w io.Writer, projects []api.Project, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, p := range projects {
		writePlainLine(tw, p)
	}
	return tw.Flush()
}

func WritePlainProject(w io.Writer, p api.Project, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	writePlainLine(tw, p)
	return tw.Flush()
}
