// Package models defines the domain types for Raido.
package models

import (
	"time"

	"github.com/starford/raido/internal/uri"
)

// Resource types.
const (
	ResourceTypeNote       = "note"
	ResourceTypeImage      = "image"
	ResourceTypeAttachment = "attachment"
)

// LinkType is the textual syntax of a link occurrence.
type LinkType string

// Link syntaxes.
const (
	LinkTypeWikilink LinkType = "wikilink" // [[target#section|alias]]
	LinkTypeLink     LinkType = "link"     // [alias](url#section)
)

// Range is a half-open [Start, End) span of byte offsets in a document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ResourceLink is a parsed occurrence of a link inside a resource's text.
// RawText is the exact original substring covered by Range.
type ResourceLink struct {
	RawText string   `json:"raw_text"`
	Type    LinkType `json:"type"`
	IsEmbed bool     `json:"is_embed"`
	Range   Range    `json:"range"`
}

// LinkReplace describes the verbatim text that should replace the span
// Range in the source document. It never mutates the document itself.
type LinkReplace struct {
	NewText string `json:"new_text"`
	Range   Range  `json:"range"`
}

// Resource is a workspace-addressable document: a Markdown note or an
// attachment such as an image. Immutable once added to the workspace.
type Resource struct {
	ID          uri.URI                `json:"id"`
	Type        string                 `json:"type"`
	Path        string                 `json:"path"` // workspace-relative slash path
	Title       string                 `json:"title,omitempty"`
	Links       []ResourceLink         `json:"links,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Frontmatter map[string]interface{} `json:"frontmatter,omitempty"`
	Checksum    string                 `json:"checksum"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ResourceMetadata is a lightweight representation returned by list operations.
type ResourceMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
