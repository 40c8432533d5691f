// Package markdown converts the restricted markdown subset allowed in
// project descriptions into sanitized HTML. The subset is deliberately
// small: ATX headings, flat unordered lists, paragraphs, and inline
// [label](url) links. Everything else is plain text and gets escaped.
package markdown

import (
	"html"
	"strings"
)

// ToHTML renders src in a single line-oriented pass. The output never
// contains an unescaped input byte; link URLs are restricted to http,
// https, mailto, and relative paths.
func ToHTML(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	var blocks []string
	var para []string
	inList := false

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, "<p>"+inline(strings.Join(para, " "))+"</p>")
		para = para[:0]
	}
	closeList := func() {
		if inList {
			blocks = append(blocks, "</ul>")
			inList = false
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			closeList()
			flushPara()
			continue
		}

		if level, rest, ok := heading(line); ok {
			closeList()
			flushPara()
			tag := []string{"h1", "h2", "h3", "h4", "h5", "h6"}[level-1]
			blocks = append(blocks, "<"+tag+">"+inline(rest)+"</"+tag+">")
			continue
		}

		if rest, ok := listItem(line); ok {
			flushPara()
			if !inList {
				blocks = append(blocks, "<ul>")
				inList = true
			}
			blocks = append(blocks, "<li>"+inline(rest)+"</li>")
			continue
		}

		closeList()
		para = append(para, line)
	}
	closeList()
	flushPara()

	return strings.Join(blocks, "\n")
}

// heading matches "#"-"######" followed by a space. Seven or more
// hashes, or a missing space, is plain text.
func heading(line string) (level int, rest string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n == len(line) || line[n] != ' ' {
		return 0, "", false
	}
	return n, strings.TrimSpace(line[n+1:]), true
}

func listItem(line string) (rest string, ok bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}
	return "", false
}

// inline renders text with [label](url) links, escaping everything else.
// Single pass, no backtracking: an unmatched bracket is literal text.
func inline(text string) string {
	var b strings.Builder
	for len(text) > 0 {
		open := strings.IndexByte(text, '[')
		if open < 0 {
			b.WriteString(html.EscapeString(text))
			break
		}
		b.WriteString(html.EscapeString(text[:open]))
		rest := text[open:]

		label, url, width, ok := parseLink(rest)
		if !ok || !safeURL(url) {
			b.WriteString(html.EscapeString("["))
			text = rest[1:]
			continue
		}
		b.WriteString(`<a href="` + html.EscapeString(url) + `">` + html.EscapeString(label) + `</a>`)
		text = rest[width:]
	}
	return b.String()
}

// parseLink expects rest to start with '[' and returns the label, url,
// and consumed width of a [label](url) token.
func parseLink(rest string) (label, url string, width int, ok bool) {
	closeIdx := strings.IndexByte(rest, ']')
	if closeIdx < 0 || closeIdx+1 >= len(rest) || rest[closeIdx+1] != '(' {
		return "", "", 0, false
	}
	label = rest[1:closeIdx]
	if strings.ContainsAny(label, "[\n") {
		return "", "", 0, false
	}
	end := strings.IndexByte(rest[closeIdx+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	url = strings.TrimSpace(rest[closeIdx+2 : closeIdx+2+end])
	if url == "" || strings.ContainsAny(url, " \t\n") {
		return "", "", 0, false
	}
	return label, url, closeIdx + 2 + end + 1, true
}

// safeURL permits http, https, mailto, and scheme-less relative paths.
func safeURL(u string) bool {
	lower := strings.ToLower(u)
	for _, prefix := range []string{"http://", "https://", "mailto:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	// Anything with a scheme other than the above is rejected. A colon
	// before the first slash, query, or fragment marks a scheme.
	if i := strings.IndexAny(u, ":/?#"); i >= 0 && u[i] == ':' {
		return false
	}
	return true
}
