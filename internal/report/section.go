package report

import (
	"fmt"
	"time"

	"github.com/starford/dagaz/internal/index"
)

// Version is included in the Statistics line so a saved report records which
// dashboard produced it.
const Version = "0.3.0"

// Section names accepted in the dashboard sections config list.
const (
	SectionStatistics = "statistics"
	SectionSticky     = "sticky"
	SectionModified   = "modified"
	SectionOrphaned   = "orphaned"
	SectionMostLinked = "most-linked"
	SectionFooter     = "footer"
)

// KnownSections lists every section name in default display order.
var KnownSections = []string{
	SectionStatistics,
	SectionSticky,
	SectionModified,
	SectionOrphaned,
	SectionMostLinked,
	SectionFooter,
}

// Config holds the dashboard options.
type Config struct {
	SurfaceName    string
	Sections       []string
	StickyTag      string
	RecentLimit    int
	TopLinkedLimit int
	TitleMax       int
}

// DefaultConfig returns the stock dashboard configuration.
func DefaultConfig() Config {
	return Config{
		SurfaceName:    "Dashboard",
		Sections:       append([]string(nil), KnownSections...),
		StickyTag:      "Dashboard",
		RecentLimit:    10,
		TopLinkedLimit: 10,
		TitleMax:       80,
	}
}

const timestampLayout = "2006-01-02 15:04"

// Queries against the index. The files relation stores the per-file
// attribute bag as JSON; resolving the modified timestamp out of it is the
// transform layer's job, which is why no query orders by modification time.
const (
	queryFileCount     = `SELECT count(*) FROM files`
	queryAllTags       = `SELECT tag FROM tags`
	queryFileLinkCount = `SELECT count(*) FROM links WHERE kind = 'file'`

	queryNotesWithMeta = `
		SELECT f.path, f.meta, t.title
		FROM files f
		LEFT JOIN titles t ON t.path = f.path`

	queryStickyNotes = queryNotesWithMeta + `
		WHERE f.path IN (SELECT path FROM tags WHERE tag = ?)`

	queryOrphanedNotes = queryNotesWithMeta + `
		WHERE f.path NOT IN (SELECT source FROM links)
		  AND f.path NOT IN (SELECT target FROM links)`

	queryMostLinked = `
		SELECT f.path, t.title, count(l.source) AS hits
		FROM files f
		LEFT JOIN links l ON l.target = f.path AND l.kind = 'file'
		LEFT JOIN titles t ON t.path = f.path
		GROUP BY f.path
		ORDER BY hits DESC, f.rowid
		LIMIT ?`
)

// pipeline bundles what every section producer needs during one refresh.
type pipeline struct {
	gw  *Gateway
	cfg Config
}

// producer returns the section producer registered under name, or nil for an
// unrecognised name. Every producer reports whether it wrote anything so the
// caller can insert separators only after productive sections. A producer
// that finds no data writes nothing, not even a header.
func (p *pipeline) producer(name string) func(*Surface) bool {
	switch name {
	case SectionStatistics:
		return p.statistics
	case SectionSticky:
		return p.sticky
	case SectionModified:
		return p.modified
	case SectionOrphaned:
		return p.orphaned
	case SectionMostLinked:
		return p.mostLinked
	case SectionFooter:
		return p.footer
	}
	return nil
}

// statistics writes one summary line with grouped counts of notes, distinct
// tags, and file links. A failure in any of the three queries suppresses the
// whole line rather than rendering an understated count.
func (p *pipeline) statistics(s *Surface) bool {
	files, ok := p.gw.Query(SectionStatistics, queryFileCount)
	if !ok || len(files) == 0 {
		return false
	}
	tagRows, ok := p.gw.Query(SectionStatistics, queryAllTags)
	if !ok {
		return false
	}
	linkRows, ok := p.gw.Query(SectionStatistics, queryFileLinkCount)
	if !ok {
		return false
	}

	fileCount := countValue(files)
	tagCount := int64(len(FlattenTags(tagRows)))
	linkCount := countValue(linkRows)

	s.WriteLine(fmt.Sprintf("%s notes, %s distinct tags, %s links. Generated by dagaz %s.",
		GroupDigits(fileCount), GroupDigits(tagCount), GroupDigits(linkCount), Version))
	return true
}

// sticky lists the notes carrying the configured sentinel tag, most recently
// modified first.
func (p *pipeline) sticky(s *Surface) bool {
	rows := p.gw.Select(SectionSticky, queryStickyNotes, p.cfg.StickyTag)
	if len(rows) == 0 {
		return false
	}
	ResolveModifiedAt(rows, 1)
	SortByModifiedDesc(rows, 1)

	s.WriteLine("Sticky pages:")
	p.writeEntries(s, recordsFromRows(rows))
	return true
}

// modified lists the most recently modified notes.
func (p *pipeline) modified(s *Surface) bool {
	rows := p.gw.Select(SectionModified, queryNotesWithMeta)
	if len(rows) == 0 {
		return false
	}
	ResolveModifiedAt(rows, 1)
	SortByModifiedDesc(rows, 1)
	if len(rows) > p.cfg.RecentLimit {
		rows = rows[:p.cfg.RecentLimit]
	}

	s.WriteLine("Recently modified:")
	p.writeEntries(s, recordsFromRows(rows))
	return true
}

// orphaned renders a single stat button carrying the full orphan list as a
// frozen snapshot; activating it materialises the secondary report.
func (p *pipeline) orphaned(s *Surface) bool {
	rows := p.gw.Select(SectionOrphaned, queryOrphanedNotes)
	if len(rows) == 0 {
		return false
	}
	ResolveModifiedAt(rows, 1)
	SortByModifiedDesc(rows, 1)
	recs := recordsFromRows(rows)

	label := fmt.Sprintf("Orphaned notes: %s", GroupDigits(int64(len(recs))))
	s.WriteStatButton(label, "Orphaned Files", recs)
	s.WriteString("\n")
	return true
}

// mostLinked lists the notes with the most inbound file links. Notes without
// inbound links still rank (with zero hits) so the relative order between a
// linked and an unlinked note is always observable.
func (p *pipeline) mostLinked(s *Surface) bool {
	rows := p.gw.Select(SectionMostLinked, queryMostLinked, p.cfg.TopLinkedLimit)
	if len(rows) == 0 {
		return false
	}

	s.WriteLine("Most linked:")
	for _, r := range rows {
		rec := Record{Path: r[0].(string)}
		if t, ok := r[1].(string); ok {
			rec.Title = t
		}
		if hits, ok := r[2].(int64); ok {
			rec.Extra = int(hits)
		}
		s.WriteFileLink(rec.Path, TruncateTitle(DisplayName(rec.Title, rec.Path), p.cfg.TitleMax))
		s.WriteString("\n")
	}
	return true
}

// footer writes the static usage hint. Always present.
func (p *pipeline) footer(s *Surface) bool {
	s.WriteLine("Enter opens the item under the cursor, Tab moves between items, r refreshes.")
	return true
}

// writeEntries renders records in the shared row format: an optional
// timestamp followed by a file link.
func (p *pipeline) writeEntries(s *Surface, recs []Record) {
	for _, rec := range recs {
		if !rec.Modified.IsZero() {
			s.WriteString(rec.Modified.Format(timestampLayout) + "  ")
		}
		s.WriteFileLink(rec.Path, TruncateTitle(DisplayName(rec.Title, rec.Path), p.cfg.TitleMax))
		s.WriteString("\n")
	}
}

// recordsFromRows converts resolved (path, modified, title) rows into
// normalised records. The title column may be NULL for untitled notes.
func recordsFromRows(rows []index.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec := Record{Path: r[0].(string)}
		if ts, ok := r[1].(time.Time); ok {
			rec.Modified = ts
		}
		if t, ok := r[2].(string); ok {
			rec.Title = t
		}
		out = append(out, rec)
	}
	return out
}

// countValue extracts the single integer of a count(*) result.
func countValue(rows []index.Row) int64 {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0
	}
	if n, ok := rows[0][0].(int64); ok {
		return n
	}
	return 0
}
