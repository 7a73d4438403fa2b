// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/danielhkuo/votio/middleware"
	"github.com/danielhkuo/votio/uploads"
)

type UploadHandler struct {
	store uploads.Store
}

func NewUploadHandler(store uploads.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Serve handles GET /uploads/{filename}
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if !uploads.ValidName(name) {
		middleware.ErrorResponse(w, http.StatusNotFound, "File not found")
		return
	}

	rc, err := h.store.Open(r.Context(), name)
	if errors.Is(err, uploads.ErrNotExist) {
		middleware.ErrorResponse(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		slog.Error("failed to open upload", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("failed to stream upload", "name", name, "error", err)
	}
}
