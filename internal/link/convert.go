package link

import (
	"strings"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/uri"
)

// Workspace is the resolved graph of all resources, consumed read-only for
// the duration of a conversion. ResolveLink may return a placeholder-scheme
// identifier for unresolvable targets, or the zero URI when resolution
// produced nothing at all; the two states are handled separately.
type Workspace interface {
	ResolveLink(source *models.Resource, l models.ResourceLink) uri.URI
	Find(id uri.URI) *models.Resource
	DefaultExtension() string
}

// Source identifies the resource containing a link: either the resource
// itself or its identifier, looked up at conversion entry.
type Source struct {
	res *models.Resource
	id  uri.URI
}

// SourceResource wraps a resource as a conversion source.
func SourceResource(r *models.Resource) Source {
	return Source{res: r}
}

// SourceURI wraps a resource identifier as a conversion source.
func SourceURI(id uri.URI) Source {
	return Source{id: id}
}

func (s Source) resource(ws Workspace) (*models.Resource, error) {
	if s.res != nil {
		return s.res, nil
	}
	if r := ws.Find(s.id); r != nil {
		return r, nil
	}
	return nil, &UnknownResourceError{ID: s.id}
}

// ConvertFormat rewrites a link occurrence into the given target format and
// returns the replacement text for the link's span. The returned range is
// always the input link's range.
//
// Conversions that would change nothing are valid no-ops: a link already in
// the target format, or a link resolving to a placeholder (non-existent)
// resource, comes back as its own raw text. Rewriting an unresolvable link
// would fabricate an incorrect path, so it is left untouched.
func ConvertFormat(l models.ResourceLink, format models.LinkType, ws Workspace, src Source) (models.LinkReplace, error) {
	resource, err := src.resource(ws)
	if err != nil {
		return models.LinkReplace{}, err
	}

	targetURI := ws.ResolveLink(resource, l)
	if l.Type == format || targetURI.IsPlaceholder() {
		return models.LinkReplace{NewText: l.RawText, Range: l.Range}, nil
	}

	parts := Analyze(l)
	if targetURI.IsZero() {
		return models.LinkReplace{}, &UnresolvableLinkError{RawText: l.RawText}
	}

	targetRes := ws.Find(targetURI)
	if targetRes == nil {
		return models.LinkReplace{}, &UnknownResourceError{ID: targetURI}
	}

	// Relativization is format-agnostic and computed once.
	relative := targetRes.ID.RelativeTo(resource.ID.Dir())

	switch format {
	case models.LinkTypeWikilink:
		return models.LinkReplace{
			NewText: wikilinkText(l, parts, relative, ws.DefaultExtension()),
			Range:   l.Range,
		}, nil
	case models.LinkTypeLink:
		return models.LinkReplace{
			NewText: inlineText(l, parts, relative, resource, targetRes),
			Range:   l.Range,
		}, nil
	}
	return models.LinkReplace{}, &UnsupportedFormatError{Format: string(format)}
}

// wikilinkText renders a link in [[...]] form. Wikilink targets resolve
// workspace-wide by basename, so the directory part is dropped, and the
// canonical extension is elided when present.
func wikilinkText(l models.ResourceLink, parts Parts, relative uri.URI, defaultExt string) string {
	if strings.HasSuffix(relative.Path, defaultExt) {
		relative = relative.ChangeExtension("*", "")
	}
	target := relative.Basename()

	// Inline display text does not carry over as a wikilink alias; only an
	// authored section anchor survives the rewrite.
	sectionDivider := ""
	if parts.Section != "" {
		sectionDivider = "#"
	}
	embed := ""
	if l.IsEmbed {
		embed = "!"
	}
	return embed + "[[" + target + sectionDivider + parts.Section + "]]"
}

// inlineText renders a link in [alias](url) form.
func inlineText(l models.ResourceLink, parts Parts, relative uri.URI, source, target *models.Resource) string {
	// Identity comparison: two same-named notes in different directories are
	// distinct targets, not in-page anchors.
	inPage := target.ID.SameResource(source.ID)

	sectionDivider := ""
	if parts.Section != "" {
		sectionDivider = "#"
	}

	// A Markdown link's display text must never be empty; synthesize one
	// from the authored target and section when absent.
	alias := parts.Alias
	if alias == "" {
		effectiveTarget := parts.Target
		if inPage {
			effectiveTarget = ""
		}
		alias = effectiveTarget + sectionDivider + parts.Section
	}

	url := relative.Path
	if inPage {
		// In-page anchor: the filename component is omitted.
		url = ""
	}
	if parts.Section != "" {
		url += sectionDivider + parts.Section
	}
	if strings.Contains(url, " ") {
		url = "<" + url + ">"
	}

	// Embedding a full note has no inline-link equivalent; the marker is
	// preserved only for non-note targets such as images.
	embed := ""
	if l.IsEmbed && target.Type != models.ResourceTypeNote {
		embed = "!"
	}
	return embed + "[" + alias + "](" + url + ")"
}
