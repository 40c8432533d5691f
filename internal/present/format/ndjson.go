package format

import (
	"encoding/json"
	"io"

	"folio/pkg/api"
)

// WriteNDJSONProjects writes projects as newline-delimited JSON objects.
func WriteNDJSONProjects(w io.Writer, projects []api.Project) error {
	enc := json.NewEncoder(w)
	for _, p := range projects {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONProject writes a single project as one JSON line.
func WriteNDJSONProject(w io.Writer, p api.Project) error {
	enc := json.NewEncoder(w)
	return enc.Encode(p)
}
