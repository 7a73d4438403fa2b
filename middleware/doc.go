// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Every request gets an id (X-Request-ID, generated with google/uuid when
the client sends none). It is echoed in the response, stored in the
request context (RequestID) and logged with method, path, status and
duration_ms.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Encoding and decoding use goccy/go-json.

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

IsJSON tells form posts from JSON posts; the voting endpoints answer each
differently.

# Flash Messages

Form posts report errors on the page they redirect to. The message travels
in a short-lived cookie holding an HS256 JWT signed with the configured
secret key:

	middleware.SetFlash(w, cfg.SecretKey, "error", "Election title is required")
	middleware.Redirect(w, r, "/election")

	flashes := middleware.PopFlashes(w, r, cfg.SecretKey)

# Client IP Extraction

	ip := middleware.GetClientIP(r)

First X-Forwarded-For hop, then X-Real-IP, then RemoteAddr without its
port. This is the voter identity.
*/
package middleware
