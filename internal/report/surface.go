package report

import (
	"fmt"
	"strings"
	"time"
)

// SpanKind discriminates the activatable region types.
type SpanKind int

const (
	// SpanFileLink opens the linked note through the editor collaborator.
	SpanFileLink SpanKind = iota + 1
	// SpanStatButton expands a frozen snapshot into a secondary report.
	SpanStatButton
)

// String returns the wire name of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanFileLink:
		return "file-link"
	case SpanStatButton:
		return "stat-button"
	}
	return "unknown"
}

// Record is one normalised display row produced by a section. A zero
// Modified means the source row carried no timestamp.
type Record struct {
	Modified time.Time `json:"modified,omitempty"`
	Path     string    `json:"path"`
	Title    string    `json:"title,omitempty"`
	Extra    int       `json:"extra,omitempty"`
}

// Span is one activatable region of a surface. Start and End are byte
// offsets into the surface text; End is exclusive.
type Span struct {
	Start    int
	End      int
	Kind     SpanKind
	Path     string   // file link target
	Title    string   // stat button sub-report title
	Snapshot []Record // stat button frozen rows
}

// Surface is a named, append-only text buffer with activatable spans.
//
// After FinalizeNavigation the surface is sealed: writing to it is a
// programming error, and cursor movement is restricted to the start offset
// of each interactive span. Navigation is an explicit search over the span
// list, so there is no way to land on a non-interactive position.
type Surface struct {
	name   string
	buf    strings.Builder
	spans  []Span
	sealed bool
	cursor int
}

// NewSurface creates an empty, unsealed surface with the given name.
func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

// Name returns the surface name.
func (s *Surface) Name() string { return s.name }

// Text returns the rendered report text.
func (s *Surface) Text() string { return s.buf.String() }

// Len returns the current text length in bytes.
func (s *Surface) Len() int { return s.buf.Len() }

// Sealed reports whether FinalizeNavigation has run since the last Reset.
func (s *Surface) Sealed() bool { return s.sealed }

// Spans returns a copy of the registered interactive spans in text order.
func (s *Surface) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// Reset clears all content and spans and unseals the surface.
func (s *Surface) Reset() {
	s.buf.Reset()
	s.spans = nil
	s.sealed = false
	s.cursor = 0
}

func (s *Surface) write(text string) {
	if s.sealed {
		panic(fmt.Sprintf("report: write to finalized surface %q", s.name))
	}
	s.buf.WriteString(text)
}

// WriteString appends text without a trailing newline.
func (s *Surface) WriteString(text string) {
	s.write(text)
}

// WriteLine appends text followed by a newline.
func (s *Surface) WriteLine(text string) {
	s.write(text + "\n")
}

// WriteFileLink appends display text and registers it as a file link span
// targeting path.
func (s *Surface) WriteFileLink(path, display string) {
	start := s.buf.Len()
	s.write(display)
	s.spans = append(s.spans, Span{
		Start: start,
		End:   s.buf.Len(),
		Kind:  SpanFileLink,
		Path:  path,
	})
}

// WriteStatButton appends the label and registers it as a stat button span
// carrying the frozen snapshot and the title of the sub-report it expands to.
func (s *Surface) WriteStatButton(label, title string, snapshot []Record) {
	start := s.buf.Len()
	s.write(label)
	s.spans = append(s.spans, Span{
		Start:    start,
		End:      s.buf.Len(),
		Kind:     SpanStatButton,
		Title:    title,
		Snapshot: snapshot,
	})
}

// FinalizeNavigation seals the surface and parks the cursor on the first
// interactive span.
func (s *Surface) FinalizeNavigation() {
	s.sealed = true
	if len(s.spans) > 0 {
		s.cursor = s.spans[0].Start
	} else {
		s.cursor = 0
	}
}

// Cursor returns the current cursor offset.
func (s *Surface) Cursor() int { return s.cursor }

// Next moves the cursor to the start of the next interactive span and
// returns the new offset. It stays on the last span when there is none after.
func (s *Surface) Next() int {
	for _, sp := range s.spans {
		if sp.Start > s.cursor {
			s.cursor = sp.Start
			break
		}
	}
	return s.cursor
}

// Prev moves the cursor to the start of the previous interactive span and
// returns the new offset. It stays on the first span when there is none before.
func (s *Surface) Prev() int {
	for i := len(s.spans) - 1; i >= 0; i-- {
		if s.spans[i].Start < s.cursor {
			s.cursor = s.spans[i].Start
			break
		}
	}
	return s.cursor
}

// SpanAt returns the span covering offset, if any.
func (s *Surface) SpanAt(offset int) (Span, bool) {
	for _, sp := range s.spans {
		if offset >= sp.Start && offset < sp.End {
			return sp, true
		}
	}
	return Span{}, false
}
