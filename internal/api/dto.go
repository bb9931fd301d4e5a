package api

import (
	"time"

	"github.com/starford/dagaz/internal/report"
)

// NoteDetail is the full note response type.
type NoteDetail struct {
	Path       string    `json:"path" example:"notes/hello.md" validate:"required"`
	Title      string    `json:"title" example:"Hello"`
	Content    string    `json:"content" validate:"required"`
	Checksum   string    `json:"checksum" example:"abc123..." validate:"required"`
	Tags       []string  `json:"tags" validate:"required"`
	Links      []string  `json:"links,omitempty"`
	Backlinks  []string  `json:"backlinks" validate:"required"`
	ModifiedAt time.Time `json:"modified_at"`
}

// SpanDTO is one interactive region of a rendered surface.
type SpanDTO struct {
	Start int    `json:"start" example:"42" validate:"required"`
	End   int    `json:"end" example:"56" validate:"required"`
	Kind  string `json:"kind" example:"file-link" validate:"required"`
	Path  string `json:"path,omitempty" example:"notes/hello.md"`
	Title string `json:"title,omitempty" example:"Orphaned Files"`
}

// DiagnosticDTO reports a query failure recorded during the last refresh.
type DiagnosticDTO struct {
	Time    time.Time `json:"time"`
	Section string    `json:"section" example:"orphaned"`
	Message string    `json:"message"`
}

// SurfaceResponse is a rendered report surface with its navigation spans.
type SurfaceResponse struct {
	Name        string          `json:"name" example:"Dashboard" validate:"required"`
	Text        string          `json:"text" validate:"required"`
	Cursor      int             `json:"cursor"`
	Spans       []SpanDTO       `json:"spans" validate:"required"`
	Diagnostics []DiagnosticDTO `json:"diagnostics,omitempty"`
}

// ActivateRequest is the request body for activating a span.
type ActivateRequest struct {
	Surface string `json:"surface,omitempty" example:"Dashboard"`
	Offset  int    `json:"offset" example:"42" validate:"required"`
}

// ActivateResponse describes what an activation produced: an opened file
// link or a materialised secondary surface.
type ActivateResponse struct {
	Kind    string           `json:"kind" example:"file-link" validate:"required"`
	Path    string           `json:"path,omitempty" example:"notes/hello.md"`
	Surface *SurfaceResponse `json:"surface,omitempty"`
}

// surfaceDTO converts a rendered surface and the current diagnostics into
// the wire representation.
func surfaceDTO(s *report.Surface, diags []report.Diagnostic) *SurfaceResponse {
	spans := make([]SpanDTO, 0, len(s.Spans()))
	for _, sp := range s.Spans() {
		spans = append(spans, SpanDTO{
			Start: sp.Start,
			End:   sp.End,
			Kind:  sp.Kind.String(),
			Path:  sp.Path,
			Title: sp.Title,
		})
	}
	out := &SurfaceResponse{
		Name:   s.Name(),
		Text:   s.Text(),
		Cursor: s.Cursor(),
		Spans:  spans,
	}
	for _, d := range diags {
		out.Diagnostics = append(out.Diagnostics, DiagnosticDTO{
			Time:    d.Time,
			Section: d.Section,
			Message: d.Message,
		})
	}
	return out
}
