package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/workspace"
)

// Sync walks the vault and brings the index and workspace graph up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from both
func Sync(db *DB, ws *workspace.Workspace, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexResource(db, ws, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteResource(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				ws.Remove(p)
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexResource parses data, updates the workspace graph, and upserts the
// resource into the DB. Link targets are resolved against the current graph
// before being persisted.
func IndexResource(db *DB, ws *workspace.Workspace, path string, data []byte) error {
	ext := ws.DefaultExtension()

	if !strings.HasSuffix(path, ext) {
		res := workspace.AttachmentResource(path, ext)
		res.Checksum = checksum.Sum(data)
		ws.Put(res)
		return db.UpsertResource(ResourceRow{
			Path:      path,
			Type:      res.Type,
			Checksum:  res.Checksum,
			Tags:      []string{},
			UpdatedAt: time.Now(),
		}, "", nil)
	}

	res, parsed, err := workspace.NoteResource(path, data)
	if err != nil {
		return err
	}
	ws.Put(res)

	rows := make([]LinkRow, 0, len(res.Links))
	for _, l := range res.Links {
		id := ws.ResolveLink(res, l)
		rows = append(rows, LinkRow{
			Target: strings.TrimPrefix(id.Path, "/"),
			Kind:   string(l.Type),
			Raw:    l.RawText,
			Start:  l.Range.Start,
			End:    l.Range.End,
		})
	}

	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return db.UpsertResource(ResourceRow{
		Path:      path,
		Title:     res.Title,
		Type:      res.Type,
		Checksum:  res.Checksum,
		Tags:      tags,
		UpdatedAt: time.Now(),
	}, parsed.Body, rows)
}
