// Package filter derives the visible view of the catalog for one query.
// Filtering never mutates the catalog; every call returns a fresh slice
// preserving catalog order.
package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"folio/pkg/api"
)

// Apply returns the projects matching q, in catalog order.
func Apply(projects []api.Project, q api.Query) []api.Project {
	out := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		if !visible(p, q) {
			continue
		}
		if !matchTags(p, q) {
			continue
		}
		if q.Text != "" && !matchText(p, q.Text) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Tags returns the distinct tags across projects with their counts,
// in first-seen order. Hidden projects count only when shown by q.
func Tags(projects []api.Project, q api.Query) ([]string, map[string]int) {
	var order []string
	counts := make(map[string]int)
	for _, p := range projects {
		if !visible(p, q) {
			continue
		}
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	return order, counts
}

// Fuzzy ranks projects by fuzzy title match and returns them best-first.
// An empty pattern returns the input order unchanged.
func Fuzzy(projects []api.Project, pattern string) []api.Project {
	if pattern == "" {
		return append([]api.Project(nil), projects...)
	}
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}
	matches := fuzzy.Find(pattern, titles)
	out := make([]api.Project, 0, len(matches))
	for _, m := range matches {
		out = append(out, projects[m.Index])
	}
	return out
}

// visible applies the three independent visibility toggles. A project
// flagged in more than one way needs every matching toggle.
func visible(p api.Project, q api.Query) bool {
	if p.Draft && !q.ShowDrafts {
		return false
	}
	if p.Archived && !q.ShowArchived {
		return false
	}
	if p.Private && !q.ShowPrivate {
		return false
	}
	return true
}

func matchTags(p api.Project, q api.Query) bool {
	if len(q.TagsAny) > 0 {
		any := false
		for _, t := range q.TagsAny {
			if p.HasTag(t) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	for _, t := range q.TagsAll {
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}

func matchText(p api.Project, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.ID), needle) ||
		strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
