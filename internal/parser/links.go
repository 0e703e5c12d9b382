package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/starford/raido/internal/models"
)

var (
	wikilinkRe = regexp.MustCompile(`!?\[\[[^\[\]]+\]\]`)
	inlineRe   = regexp.MustCompile(`!?\[[^\[\]]*\]\([^()]*\)`)
)

// ExtractLinks finds every wikilink and inline-link occurrence in body.
// Ranges are half-open byte spans shifted by offset, so they index into the
// original document rather than the body slice. Wikilinks are matched first;
// inline-link matches overlapping a wikilink span are discarded.
func ExtractLinks(body string, offset int) []models.ResourceLink {
	var out []models.ResourceLink

	wiki := wikilinkRe.FindAllStringIndex(body, -1)
	for _, span := range wiki {
		out = append(out, makeLink(body, span, models.LinkTypeWikilink, offset))
	}

	for _, span := range inlineRe.FindAllStringIndex(body, -1) {
		if overlapsAny(span, wiki) {
			continue
		}
		out = append(out, makeLink(body, span, models.LinkTypeLink, offset))
	}

	// Restore document order: wikilinks and inline links were collected in
	// separate passes.
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return out
}

func makeLink(body string, span []int, typ models.LinkType, offset int) models.ResourceLink {
	raw := body[span[0]:span[1]]
	return models.ResourceLink{
		RawText: raw,
		Type:    typ,
		IsEmbed: strings.HasPrefix(raw, "!"),
		Range:   models.Range{Start: span[0] + offset, End: span[1] + offset},
	}
}

func overlapsAny(span []int, spans [][]int) bool {
	for _, s := range spans {
		if span[0] < s[1] && s[0] < span[1] {
			return true
		}
	}
	return false
}

