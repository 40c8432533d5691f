package format

import (
	"encoding/json"
	"io"

	"folio/pkg/api"
)

func WriteJSONProjects(w io.Writer, projects []api.Project, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(projects)
}

func WriteJSONProject(w io.Writer, p api.Project, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(p)
}
