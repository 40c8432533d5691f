package api

import (
	"encoding/json"
	"strings"
)

// Project is one portfolio entry as loaded from the catalog document.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date,omitempty"` // ISO-ish, optional; see util.ParseProjectDate
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Links       []Link   `json:"links,omitempty"`
	Images      []Image  `json:"images,omitempty"`
	Draft       bool     `json:"draft,omitempty"`
	Archived    bool     `json:"archived,omitempty"`
	Private     bool     `json:"private,omitempty"`
}

// Link is a labeled external URL attached to a project.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Image is one project image. The catalog accepts either a plain string
// path or an object {"src": ..., "alt": ...}; both decode into Image.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

func (im *Image) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*im = Image{Src: s}
		return nil
	}
	type plain Image
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*im = Image(p)
	return nil
}

// MarshalJSON preserves the compact form: an image without alt text
// round-trips as a bare string.
func (im Image) MarshalJSON() ([]byte, error) {
	if im.Alt == "" {
		return json.Marshal(im.Src)
	}
	type plain Image
	return json.Marshal(plain(im))
}

// Hidden reports whether any visibility flag is set on the project.
func (p Project) Hidden() bool {
	return p.Draft || p.Archived || p.Private
}

// HasTag reports whether the project carries the tag (case-insensitive).
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Query filters the catalog into a derived view.
type Query struct {
	Text    string   // case-insensitive substring over id, title, tags, description
	TagsAny []string // match if project has ANY of these tags
	TagsAll []string // match if project has ALL of these tags

	// Visibility toggles. Flagged projects are hidden unless the
	// matching toggle is on; flags are independent.
	ShowDrafts   bool
	ShowArchived bool
	ShowPrivate  bool
}
