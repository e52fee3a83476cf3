// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package links finds links in chat text and renders them as terminal
// hyperlinks.
package links

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// linkPattern matches a markdown link [text](url) or a bare http(s) URL.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)|(https?://[^\s]+)`)

// fallbackLen is how much of an unparsable URL is shown before "...".
const fallbackLen = 27

// Segment is a run of plain text or a single link.
type Segment struct {
	Text string // Display text
	URL  string // Empty for plain text
}

// IsLink reports whether the segment is a link.
func (s Segment) IsLink() bool {
	return s.URL != ""
}

// Split breaks text into plain and link segments in order. Concatenating
// the plain segments with each link's display text gives the visible line.
func Split(text string) []Segment {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	var out []Segment
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			out = append(out, Segment{Text: text[pos:m[0]]})
		}
		if m[2] >= 0 {
			out = append(out, Segment{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]})
		} else {
			raw := text[m[6]:m[7]]
			out = append(out, Segment{Text: DisplayHost(raw), URL: raw})
		}
		pos = m[1]
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}

// DisplayHost is the label for a bare URL: its hostname without a leading
// "www.". A URL that does not parse shows its first 27 characters and "...".
func DisplayHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		if runes := []rune(raw); len(runes) > fallbackLen+3 {
			return string(runes[:fallbackLen]) + "..."
		}
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Render returns text with every link replaced by an OSC 8 hyperlink whose
// label is styled with style. Terminals without OSC 8 show the label only.
func Render(text string, style lipgloss.Style) string {
	segments := Split(text)
	var b strings.Builder
	for _, seg := range segments {
		if !seg.IsLink() {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(ansi.SetHyperlink(seg.URL))
		b.WriteString(style.Render(seg.Text))
		b.WriteString(ansi.ResetHyperlink())
	}
	return b.String()
}

// Plain returns text with links reduced to "label (url)", for output that
// is not a terminal.
func Plain(text string) string {
	var b strings.Builder
	for _, seg := range Split(text) {
		if !seg.IsLink() || seg.Text == seg.URL {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(seg.Text)
		b.WriteString(" (")
		b.WriteString(seg.URL)
		b.WriteString(")")
	}
	return b.String()
}
