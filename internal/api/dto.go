package api

import (
	"github.com/starford/raido/internal/noteservice"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// ConvertRequest is the request body for a link format conversion.
// Format is "wikilink" or "link"; DryRun previews the replacements without
// writing the file.
type ConvertRequest struct {
	Path   string `json:"path" example:"notes/hello.md" validate:"required"`
	Format string `json:"format" example:"wikilink" validate:"required"`
	DryRun bool   `json:"dry_run"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem

// ConvertResponse is the conversion outcome (aliased from the domain layer).
type ConvertResponse = noteservice.ConvertResult

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// BacklinksResponse wraps a backlink listing.
type BacklinksResponse struct {
	Backlinks []string `json:"backlinks" validate:"required"`
}

// GraphResponse wraps the link graph.
type GraphResponse struct {
	Nodes []GraphNode `json:"nodes" validate:"required"`
	Links []GraphLink `json:"links" validate:"required"`
}

// GraphNode is a node in the link graph.
type GraphNode struct {
	Path  string `json:"path" example:"notes/hello.md" validate:"required"`
	Title string `json:"title,omitempty" example:"Hello"`
	Type  string `json:"type" example:"note"`
}

// GraphLink is an edge in the link graph.
type GraphLink struct {
	Source string `json:"source" example:"notes/hello.md" validate:"required"`
	Target string `json:"target" example:"notes/world.md" validate:"required"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/image.png" validate:"required"`
}
