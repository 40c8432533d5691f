// Package feed assembles RSS 2.0 and Atom documents for the public
// slice of the catalog. Feeds are plain string assembly: every value
// passes through XML escaping, so the output is well-formed for any
// catalog input.
package feed

import (
	"fmt"
	"html"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/filter"
	"folio/internal/markdown"
	"folio/internal/util"
	"folio/pkg/api"
)

// Item is one feed entry derived from a project.
type Item struct {
	Title       string
	Link        string
	GUID        string
	Description string
	PublishedAt time.Time
}

// Items selects the publicly visible projects (no draft, archived, or
// private entries), caps them at max, and derives feed fields. Project
// descriptions arrive as sanitized HTML from the markdown converter.
func Items(site config.Site, projects []api.Project, max int, now time.Time) []Item {
	public := filter.Apply(projects, api.Query{})
	if max > 0 && len(public) > max {
		public = public[:max]
	}

	out := make([]Item, 0, len(public))
	for _, p := range public {
		link := absoluteURL(site.BaseURL, "/projects/"+p.ID+"/")
		if site.BaseURL == "" {
			// Without a configured base there is no routable project
			// page; prefer the project's own link, else the channel
			// link.
			if len(p.Links) > 0 {
				link = p.Links[0].URL
			} else {
				link = baseURLWithFallback(site.BaseURL)
			}
		}
		published := now
		if t, err := util.ParseProjectDate(p.Date); err == nil {
			published = t
		}
		out = append(out, Item{
			Title:       p.Title,
			Link:        link,
			GUID:        absoluteURL(site.BaseURL, "/projects/"+p.ID+"/"),
			Description: markdown.ToHTML(p.Description),
			PublishedAt: published,
		})
	}
	return out
}

// BuildRSS renders an RSS 2.0 document.
func BuildRSS(site config.Site, items []Item, now time.Time) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0">` + "\n")
	b.WriteString("  <channel>\n")
	b.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	b.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseURLWithFallback(site.BaseURL))))
	b.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	if site.Language != "" {
		b.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(site.Language)))
	}
	b.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", now.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		pub := item.PublishedAt
		if pub.IsZero() {
			pub = now
		}
		b.WriteString("    <item>\n")
		b.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		b.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		b.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		b.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		if item.Description != "" {
			b.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Description)))
		}
		b.WriteString("    </item>\n")
	}
	b.WriteString("  </channel>\n")
	b.WriteString(`</rss>` + "\n")
	return b.String()
}

// BuildAtom renders an Atom document.
func BuildAtom(site config.Site, items []Item, now time.Time) string {
	baseLink := baseURLWithFallback(site.BaseURL)
	feedID := baseLink + "/atom.xml"

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="%s">`+"\n", escapeXMLAttr(site.Language)))
	b.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	b.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Title)))
	b.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", now.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(baseLink)))
	b.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	if site.Author != "" {
		b.WriteString(fmt.Sprintf("  <author><name>%s</name></author>\n", escapeXML(site.Author)))
	}
	for _, item := range items {
		updated := item.PublishedAt
		if updated.IsZero() {
			updated = now
		}
		b.WriteString("  <entry>\n")
		b.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		b.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		b.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		b.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", updated.UTC().Format(time.RFC3339)))
		if !item.PublishedAt.IsZero() {
			b.WriteString(fmt.Sprintf("    <published>%s</published>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		}
		if item.Description != "" {
			b.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(item.Description)))
		}
		b.WriteString("  </entry>\n")
	}
	b.WriteString(`</feed>` + "\n")
	return b.String()
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
