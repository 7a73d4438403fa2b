// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/votio/auth"
	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/handlers"
	"github.com/danielhkuo/votio/middleware"
	"github.com/danielhkuo/votio/uploads"
)

// NewRouter wires every endpoint. A nil gatherer disables /metrics.
func NewRouter(svc *election.Service, store uploads.Store, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	identity := auth.IPIdentity{}
	electionHandler := handlers.NewElectionHandler(svc, identity, cfg)
	votingHandler := handlers.NewVotingHandler(svc, identity, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)
	uploadHandler := handlers.NewUploadHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Election lifecycle
	mux.HandleFunc("GET /{$}", middleware.WithLogging(electionHandler.Home))
	mux.HandleFunc("GET /election", middleware.WithLogging(electionHandler.CreateForm))
	mux.HandleFunc("POST /election", middleware.WithLogging(electionHandler.Create))
	mux.HandleFunc("GET /election/{code}", middleware.WithLogging(electionHandler.Detail))
	mux.HandleFunc("GET /api/check_code", middleware.WithLogging(electionHandler.CheckCode))

	// Voting and results
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /vote/{code}", middleware.WithLogging(resultsHandler.Results))

	// Candidate media
	mux.HandleFunc("GET /uploads/{filename}", middleware.WithLogging(uploadHandler.Serve))

	return mux
}
