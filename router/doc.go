// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Votio API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, store, cfg, registry)

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition

Elections:

	GET  /                  - Landing data and pending flashes
	GET  /election          - Creation form defaults
	POST /election          - Create (form, multipart or JSON)
	GET  /election/{code}   - Ballot, or redirect to results for voters
	GET  /api/check_code    - Does a code exist?

Voting and results:

	POST /vote              - Cast a vote (JSON or form)
	GET  /vote/{code}       - Results

Media:

	GET /uploads/{filename} - Candidate photos and CVs

Everything except /health and /metrics is wrapped in request logging.
*/
package router
