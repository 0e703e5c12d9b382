package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ResourceRow represents a row in the resources table.
type ResourceRow struct {
	Path      string
	Title     string
	Type      string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// LinkRow is one persisted link occurrence. Target is the resolved
// workspace path when resolution succeeded, otherwise the raw target text.
type LinkRow struct {
	Target string
	Kind   string
	Raw    string
	Start  int
	End    int
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// GraphNode is one vertex of the link graph.
type GraphNode struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// GraphLink is one directed edge of the link graph.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// UpsertResource inserts or replaces a resource, its FTS entry, and its link
// occurrences within a transaction.
func (db *DB) UpsertResource(r ResourceRow, body string, links []LinkRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(r.Tags)

	_, err = tx.Exec(`
		INSERT INTO resources (path, title, type, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			type       = excluded.type,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, r.Path, r.Title, r.Type, r.Checksum, string(tagsJSON), body, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert resource: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, r.Path, r.Title, body, r.Tags); err != nil {
		return err
	}

	// Replace link occurrences: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, r.Path)
	if len(links) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO links (source, target, kind, raw, start_pos, end_pos) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, l := range links {
			if _, err := stmt.Exec(r.Path, l.Target, l.Kind, l.Raw, l.Start, l.End); err != nil {
				return fmt.Errorf("index: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteResource removes a resource, its FTS entry, and outgoing links.
func (db *DB) DeleteResource(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM resources WHERE path = ?`, path)

	return tx.Commit()
}

// GetResource returns a single resource row, or nil if not indexed.
func (db *DB) GetResource(path string) (*ResourceRow, error) {
	var r ResourceRow
	var tagsJSON string
	err := db.conn.QueryRow(`
		SELECT path, title, type, checksum, tags, updated_at
		FROM resources WHERE path = ?
	`, path).Scan(&r.Path, &r.Title, &r.Type, &r.Checksum, &tagsJSON, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get resource: %w", err)
	}
	_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
	return &r, nil
}

// GetChecksum returns the stored checksum for a resource, or empty string if
// not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM resources WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// ListResources returns paginated resources with optional tag and type
// filters. sort may be "updated_at", "title", or "path" (default).
func (db *DB) ListResources(limit, offset int, tag, typ, sort string) ([]ResourceRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var orderBy string
	switch sort {
	case "updated_at":
		orderBy = "updated_at DESC"
	case "title":
		orderBy = "title COLLATE NOCASE ASC"
	default:
		orderBy = "path ASC"
	}

	var conds []string
	args := []any{}
	if tag != "" {
		// Tags are stored as a JSON array of strings.
		conds = append(conds, `tags LIKE ?`)
		args = append(args, `%"`+tag+`"%`)
	}
	if typ != "" {
		conds = append(conds, `type = ?`)
		args = append(args, typ)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM resources `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count resources: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT path, title, type, checksum, tags, updated_at
		FROM resources %s ORDER BY %s LIMIT ? OFFSET ?
	`, where, orderBy)
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list resources: %w", err)
	}
	defer rows.Close()

	var out []ResourceRow
	for rows.Next() {
		var r ResourceRow
		var tagsJSON string
		if err := rows.Scan(&r.Path, &r.Title, &r.Type, &r.Checksum, &tagsJSON, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// AllPaths returns every indexed resource path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM resources`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// AllChecksums returns path -> checksum for every indexed resource.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM resources`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Backlinks returns all resource paths that link to the given target path.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT source FROM links WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Links returns every persisted link occurrence originating at source, in
// document order.
func (db *DB) Links(source string) ([]LinkRow, error) {
	rows, err := db.conn.Query(`
		SELECT target, kind, raw, start_pos, end_pos
		FROM links WHERE source = ? ORDER BY start_pos
	`, source)
	if err != nil {
		return nil, fmt.Errorf("index: links: %w", err)
	}
	defer rows.Close()

	var out []LinkRow
	for rows.Next() {
		var l LinkRow
		if err := rows.Scan(&l.Target, &l.Kind, &l.Raw, &l.Start, &l.End); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Graph returns all nodes and deduplicated edges of the link graph.
func (db *DB) Graph() ([]GraphNode, []GraphLink, error) {
	nodeRows, err := db.conn.Query(`SELECT path, title, type FROM resources ORDER BY path`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph nodes: %w", err)
	}
	defer nodeRows.Close()

	var nodes []GraphNode
	for nodeRows.Next() {
		var n GraphNode
		if err := nodeRows.Scan(&n.Path, &n.Title, &n.Type); err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, nil, err
	}

	edgeRows, err := db.conn.Query(`SELECT DISTINCT source, target FROM links ORDER BY source, target`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph links: %w", err)
	}
	defer edgeRows.Close()

	var edges []GraphLink
	for edgeRows.Next() {
		var e GraphLink
		if err := edgeRows.Scan(&e.Source, &e.Target); err != nil {
			return nil, nil, err
		}
		edges = append(edges, e)
	}
	return nodes, edges, edgeRows.Err()
}

// escapeLike is used by the fallback search to make user input literal.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
