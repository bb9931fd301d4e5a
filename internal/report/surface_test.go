package report

import (
	"strings"
	"testing"
)

func TestSurface_SpanOffsets(t *testing.T) {
	s := NewSurface("Test")
	s.WriteLine("header")
	s.WriteFileLink("a.md", "Alpha")
	s.WriteString("\n")
	s.WriteStatButton("3 things", "Things", []Record{{Path: "x.md"}})
	s.WriteString("\n")

	spans := s.Spans()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}

	text := s.Text()
	if got := text[spans[0].Start:spans[0].End]; got != "Alpha" {
		t.Errorf("span 0 covers %q", got)
	}
	if spans[0].Kind != SpanFileLink || spans[0].Path != "a.md" {
		t.Errorf("span 0 = %+v", spans[0])
	}
	if got := text[spans[1].Start:spans[1].End]; got != "3 things" {
		t.Errorf("span 1 covers %q", got)
	}
	if spans[1].Kind != SpanStatButton || spans[1].Title != "Things" {
		t.Errorf("span 1 = %+v", spans[1])
	}
}

func TestSurface_FinalizeSealsAndPlacesCursor(t *testing.T) {
	s := NewSurface("Test")
	s.WriteLine("title")
	s.WriteFileLink("a.md", "A")
	s.WriteString("\n")
	s.FinalizeNavigation()

	if !s.Sealed() {
		t.Error("surface should be sealed")
	}
	if s.Cursor() != s.Spans()[0].Start {
		t.Errorf("cursor = %d, want first span start %d", s.Cursor(), s.Spans()[0].Start)
	}

	defer func() {
		if recover() == nil {
			t.Error("write after finalize should panic")
		}
	}()
	s.WriteLine("nope")
}

func TestSurface_Navigation(t *testing.T) {
	s := NewSurface("Test")
	s.WriteLine("title")
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		s.WriteFileLink(name, strings.TrimSuffix(name, ".md"))
		s.WriteString("\n")
	}
	s.FinalizeNavigation()

	spans := s.Spans()
	if s.Cursor() != spans[0].Start {
		t.Fatalf("cursor starts at %d", s.Cursor())
	}

	if got := s.Next(); got != spans[1].Start {
		t.Errorf("Next = %d, want %d", got, spans[1].Start)
	}
	if got := s.Next(); got != spans[2].Start {
		t.Errorf("Next = %d, want %d", got, spans[2].Start)
	}
	// Stays on the last span.
	if got := s.Next(); got != spans[2].Start {
		t.Errorf("Next past end = %d, want %d", got, spans[2].Start)
	}

	if got := s.Prev(); got != spans[1].Start {
		t.Errorf("Prev = %d, want %d", got, spans[1].Start)
	}
	if got := s.Prev(); got != spans[0].Start {
		t.Errorf("Prev = %d, want %d", got, spans[0].Start)
	}
	// Stays on the first span.
	if got := s.Prev(); got != spans[0].Start {
		t.Errorf("Prev past start = %d, want %d", got, spans[0].Start)
	}
}

func TestSurface_SpanAt(t *testing.T) {
	s := NewSurface("Test")
	s.WriteString("xx")
	s.WriteFileLink("a.md", "link")
	s.WriteString("yy")

	sp, ok := s.SpanAt(2)
	if !ok || sp.Path != "a.md" {
		t.Errorf("SpanAt(2) = %+v, %v", sp, ok)
	}
	if _, ok := s.SpanAt(0); ok {
		t.Error("SpanAt(0) should miss")
	}
	if _, ok := s.SpanAt(s.Len() - 1); ok {
		t.Error("SpanAt on trailing text should miss")
	}
}

func TestSurface_ResetUnseals(t *testing.T) {
	s := NewSurface("Test")
	s.WriteFileLink("a.md", "A")
	s.FinalizeNavigation()

	s.Reset()
	if s.Sealed() || s.Len() != 0 || len(s.Spans()) != 0 {
		t.Errorf("reset surface not empty: sealed=%v len=%d spans=%d", s.Sealed(), s.Len(), len(s.Spans()))
	}
	// Writable again.
	s.WriteLine("fresh")
	if s.Text() != "fresh\n" {
		t.Errorf("text = %q", s.Text())
	}
}
