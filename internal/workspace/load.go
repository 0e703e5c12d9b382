package workspace

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/uri"
)

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {},
}

// Load scans the store and builds the resolved graph: notes are parsed for
// links and metadata, everything else becomes an attachment resource.
func Load(store storage.Provider, defaultExt string) (*Workspace, error) {
	w := New(defaultExt)

	metas, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("workspace: load: %w", err)
	}
	for _, m := range metas {
		if !strings.HasSuffix(m.Path, defaultExt) {
			w.Put(AttachmentResource(m.Path, defaultExt))
			continue
		}
		data, err := store.Read(m.Path)
		if err != nil {
			return nil, fmt.Errorf("workspace: load %s: %w", m.Path, err)
		}
		res, _, err := NoteResource(m.Path, data)
		if err != nil {
			return nil, fmt.Errorf("workspace: parse %s: %w", m.Path, err)
		}
		w.Put(res)
	}
	return w, nil
}

// NoteResource parses raw note content into a resource. The parse result is
// returned alongside so callers needing the body (e.g. for full-text
// indexing) do not parse twice.
func NoteResource(p string, data []byte) (*models.Resource, *parser.Result, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return &models.Resource{
		ID:          uri.File(p),
		Type:        models.ResourceTypeNote,
		Path:        p,
		Title:       res.Title,
		Links:       res.Links,
		Tags:        res.Tags,
		Frontmatter: res.Frontmatter,
		Checksum:    checksum.Sum(data),
		UpdatedAt:   time.Now(),
	}, res, nil
}

// AttachmentResource builds a resource for a non-note file.
func AttachmentResource(p, defaultExt string) *models.Resource {
	typ := models.ResourceTypeAttachment
	if _, ok := imageExtensions[strings.ToLower(path.Ext(p))]; ok {
		typ = models.ResourceTypeImage
	}
	return &models.Resource{
		ID:        uri.File(p),
		Type:      typ,
		Path:      p,
		UpdatedAt: time.Now(),
	}
}
