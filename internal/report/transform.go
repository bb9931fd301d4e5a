package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/index"
)

// ResolveModifiedAt replaces the attribute bag at column col of every row
// with its extracted modification timestamp. The column must hold the JSON
// meta bag written by the indexer; any other shape is a contract violation
// between the query and transform layers and panics.
func ResolveModifiedAt(rows []index.Row, col int) {
	for _, r := range rows {
		s, ok := r[col].(string)
		if !ok {
			panic(fmt.Sprintf("report: column %d holds %T, not a metadata bag", col, r[col]))
		}
		var m index.Meta
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			panic(fmt.Sprintf("report: column %d does not decode as a metadata bag: %v", col, err))
		}
		r[col] = m.Modified
	}
}

// SortByModifiedDesc stable-sorts rows most recent first by the timestamp at
// column col. Rows with equal timestamps keep their query order.
func SortByModifiedDesc(rows []index.Row, col int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][col].(time.Time).After(rows[j][col].(time.Time))
	})
}

// TruncateTitle returns the first max characters of s, or s unchanged when
// it is already short enough.
func TruncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// DisplayName prefers the resolved title and falls back to the file base
// name without its extension.
func DisplayName(title, path string) string {
	if title != "" {
		return title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FlattenTags flattens an arbitrarily nested collection of tag values into
// unique tag strings, preserving first-seen order. Nil and non-string leaves
// are skipped.
func FlattenTags(nested any) []string {
	seen := make(map[string]struct{})
	var out []string

	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if t == "" {
				return
			}
			if _, dup := seen[t]; dup {
				return
			}
			seen[t] = struct{}{}
			out = append(out, t)
		case []string:
			for _, item := range t {
				walk(item)
			}
		case []any:
			for _, item := range t {
				walk(item)
			}
		case index.Row:
			for _, item := range t {
				walk(item)
			}
		case []index.Row:
			for _, item := range t {
				walk(item)
			}
		}
	}
	walk(nested)
	return out
}

// GroupDigits formats an integer with a dot separator every three digits
// from the least-significant end.
func GroupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
