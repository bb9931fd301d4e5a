package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/report"
)

// Handler holds API route handlers.
type Handler struct {
	svc  *Service
	ctrl *report.Controller
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service, ctrl *report.Controller) *Handler {
	return &Handler{svc: svc, ctrl: ctrl}
}

// notePath extracts the note path from the URL (everything after /api/notes/).
// Supports encoded slashes from OpenAPI clients (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetDashboard handles GET /api/dashboard.
//
//	@Summary		Get a rendered dashboard surface
//	@Tags			dashboard
//	@Produce		json
//	@Param			surface	query		string	false	"Surface name (defaults to the primary dashboard)"
//	@Success		200		{object}	SurfaceResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("surface")
	if name == "" || name == h.ctrl.PrimaryName() {
		s := h.ctrl.Open()
		writeJSON(w, http.StatusOK, surfaceDTO(s, h.ctrl.Diagnostics()))
		return
	}
	s, ok := h.ctrl.Surface(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("unknown surface"))
		return
	}
	writeJSON(w, http.StatusOK, surfaceDTO(s, nil))
}

// RefreshDashboard handles POST /api/dashboard/refresh.
//
//	@Summary		Re-run the report pipeline on the primary dashboard
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	SurfaceResponse
//	@Security		BearerAuth
//	@Router			/dashboard/refresh [post]
func (h *Handler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Open()
	if err := h.ctrl.Refresh(h.ctrl.PrimaryName()); err != nil {
		slog.Error("dashboard refresh failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	s, _ := h.ctrl.Surface(h.ctrl.PrimaryName())
	writeJSON(w, http.StatusOK, surfaceDTO(s, h.ctrl.Diagnostics()))
}

// Activate handles POST /api/dashboard/activate.
//
//	@Summary		Activate the interactive span at a text offset
//	@Tags			dashboard
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ActivateRequest	true	"Surface name and text offset"
//	@Success		200		{object}	ActivateResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		410		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dashboard/activate [post]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	name := req.Surface
	if name == "" {
		name = h.ctrl.PrimaryName()
		h.ctrl.Open()
	}

	act, err := h.ctrl.ActivateAt(name, req.Offset)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnknownSurface):
			writeJSON(w, http.StatusNotFound, errorBody("unknown surface"))
		case errors.Is(err, apperr.ErrNotInteractive):
			writeJSON(w, http.StatusBadRequest, errorBody("position is not interactive"))
		case errors.Is(err, apperr.ErrNoPayload):
			writeJSON(w, http.StatusBadRequest, errorBody("no payload attached"))
		case errors.Is(err, apperr.ErrTargetMissing):
			writeJSON(w, http.StatusGone, errorBody("target not available"))
		default:
			slog.Error("activation failed", slog.String("surface", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	resp := ActivateResponse{Kind: act.Kind.String()}
	switch act.Kind {
	case report.SpanFileLink:
		resp.Path = act.Path
	case report.SpanStatButton:
		resp.Surface = surfaceDTO(act.Sub, nil)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetNote handles GET /api/notes/*.
//
//	@Summary		Get a single note by path
//	@Tags			notes
//	@Produce		json
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{object}	NoteDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{path} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	note, err := h.svc.GetNote(path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get note failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, note)
}
