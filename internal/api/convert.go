package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/link"
	"github.com/starford/raido/internal/models"
)

// Convert handles POST /api/convert.
//
//	@Summary		Convert every link in a note between wikilink and inline format
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ConvertRequest	true	"Conversion request"
//	@Success		200		{object}	ConvertResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" || req.Format == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and format are required"))
		return
	}

	result, err := h.svc.ConvertLinks(r.Context(), req.Path, models.LinkType(req.Format), req.DryRun)
	if err != nil {
		var formatErr *link.UnsupportedFormatError
		switch {
		case errors.As(err, &formatErr):
			writeJSON(w, http.StatusBadRequest, errorBody(formatErr.Error()))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("convert failed", slog.String("path", req.Path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Backlinks handles GET /api/backlinks/*.
//
//	@Summary		List notes linking to the given path
//	@Tags			graph
//	@Produce		json
//	@Param			path	path		string	true	"Target path"
//	@Success		200		{object}	BacklinksResponse
//	@Security		BearerAuth
//	@Router			/backlinks/{path} [get]
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	bl, err := h.svc.Backlinks(r.Context(), path)
	if err != nil {
		slog.Error("backlinks failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if bl == nil {
		bl = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"backlinks": bl,
	})
}
