// Package link converts note links between wikilink ([[target#section|alias]])
// and inline Markdown ([alias](url#section)) form, preserving the resolved
// target, section, and rendering position.
package link

import (
	"strings"

	"github.com/starford/raido/internal/models"
)

// Parts is the textual decomposition of a link. Absent components are empty
// strings, never ambiguous.
type Parts struct {
	Target  string // destination text: filename/path, empty for in-page anchors
	Section string // heading anchor, without the # divider
	Alias   string // display text
}

// Analyze decomposes a link occurrence into target, section, and alias.
// Pure text work: no resolution, no I/O.
func Analyze(l models.ResourceLink) Parts {
	switch l.Type {
	case models.LinkTypeWikilink:
		return analyzeWikilink(l.RawText)
	case models.LinkTypeLink:
		return analyzeInline(l.RawText)
	}
	return Parts{}
}

// analyzeWikilink splits [[target#section|alias]], any subset of the three
// components may be absent. The # divider always precedes the | divider.
func analyzeWikilink(raw string) Parts {
	raw = strings.TrimPrefix(raw, "!")
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "[["), "]]")

	var p Parts
	if hash := strings.Index(inner, "#"); hash >= 0 {
		p.Target = inner[:hash]
		rest := inner[hash+1:]
		if pipe := strings.Index(rest, "|"); pipe >= 0 {
			p.Section = rest[:pipe]
			p.Alias = rest[pipe+1:]
		} else {
			p.Section = rest
		}
		return p
	}
	if pipe := strings.Index(inner, "|"); pipe >= 0 {
		p.Target = inner[:pipe]
		p.Alias = inner[pipe+1:]
		return p
	}
	p.Target = inner
	return p
}

// analyzeInline splits [alias](url#section). URLs wrapped in angle brackets
// are unwrapped before splitting off the section.
func analyzeInline(raw string) Parts {
	raw = strings.TrimPrefix(raw, "!")
	sep := strings.Index(raw, "](")
	if sep < 0 || !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, ")") {
		return Parts{}
	}

	p := Parts{Alias: raw[1:sep]}

	url := strings.TrimSuffix(raw[sep+2:], ")")
	url = strings.TrimSuffix(strings.TrimPrefix(url, "<"), ">")

	if hash := strings.Index(url, "#"); hash >= 0 {
		p.Target = url[:hash]
		p.Section = url[hash+1:]
	} else {
		p.Target = url
	}
	return p
}
