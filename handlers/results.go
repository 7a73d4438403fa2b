// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/middleware"
)

type ResultsHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewResultsHandler(svc *election.Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// Results handles GET /vote/{code}
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	results, err := h.svc.Results(r.Context(), code)
	if errors.Is(err, election.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to compute results", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
