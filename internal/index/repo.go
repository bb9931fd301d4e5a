package index

import (
	"encoding/json"
	"fmt"
	"time"
)

// Meta is the attribute bag stored in the files relation. New attributes can
// be added here without touching the schema.
type Meta struct {
	Modified time.Time `json:"modified"`
	Checksum string    `json:"checksum"`
}

// NoteRow is the indexed representation of one note.
type NoteRow struct {
	Path     string
	Title    string
	Tags     []string
	Checksum string
	Modified time.Time
}

// Row is one positional result tuple from Select.
type Row []any

// UpsertNote inserts or replaces a note across the files, titles, tags, and
// links relations within a single transaction.
func (db *DB) UpsertNote(n NoteRow, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	metaJSON, err := json.Marshal(Meta{Modified: n.Modified, Checksum: n.Checksum})
	if err != nil {
		return fmt.Errorf("index: marshal meta: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO files (path, meta) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET meta = excluded.meta
	`, n.Path, string(metaJSON))
	if err != nil {
		return fmt.Errorf("index: upsert file: %w", err)
	}

	// Replace the title row; absent titles fall back to the base name at
	// render time, so no row is stored for them.
	_, _ = tx.Exec(`DELETE FROM titles WHERE path = ?`, n.Path)
	if n.Title != "" {
		if _, err := tx.Exec(`INSERT INTO titles (path, title) VALUES (?, ?)`, n.Path, n.Title); err != nil {
			return fmt.Errorf("index: insert title: %w", err)
		}
	}

	// Replace tags: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM tags WHERE path = ?`, n.Path)
	if len(n.Tags) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO tags (path, tag) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare tag insert: %w", err)
		}
		defer stmt.Close()
		for _, tag := range n.Tags {
			if _, err := stmt.Exec(n.Path, tag); err != nil {
				return fmt.Errorf("index: insert tag: %w", err)
			}
		}
	}

	// Replace outgoing links.
	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, n.Path)
	if len(links) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source, target, kind) VALUES (?, ?, 'file')`)
		if err != nil {
			return fmt.Errorf("index: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range links {
			if _, err := stmt.Exec(n.Path, target); err != nil {
				return fmt.Errorf("index: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteNote removes a note and its title, tags, and outgoing links.
func (db *DB) DeleteNote(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM links WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM tags WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM titles WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM files WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var metaJSON string
	err := db.conn.QueryRow(`SELECT meta FROM files WHERE path = ?`, path).Scan(&metaJSON)
	if err != nil {
		return "", nil // not found is fine
	}
	var m Meta
	if err := json.Unmarshal([]byte(metaJSON), &m); err != nil {
		return "", fmt.Errorf("index: decode meta for %s: %w", path, err)
	}
	return m.Checksum, nil
}

// AllChecksums returns the stored checksum for every indexed note path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, meta FROM files`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, metaJSON string
		if err := rows.Scan(&p, &metaJSON); err != nil {
			return nil, err
		}
		var m Meta
		if err := json.Unmarshal([]byte(metaJSON), &m); err != nil {
			return nil, fmt.Errorf("index: decode meta for %s: %w", p, err)
		}
		out[p] = m.Checksum
	}
	return out, rows.Err()
}

// Backlinks returns all note paths that link to the given target.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT source FROM links WHERE target = ?`, target)
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

// Select runs an arbitrary read query and returns positional rows. TEXT and
// BLOB columns are normalised to string so callers can type-switch without
// caring about driver representation.
func (db *DB) Select(query string, args ...any) ([]Row, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: select: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("index: columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		vals := make(Row, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("index: scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, vals)
	}
	return out, rows.Err()
}
