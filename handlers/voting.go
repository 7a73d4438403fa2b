// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/votio/auth"
	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/middleware"
	"github.com/danielhkuo/votio/models"
	"github.com/danielhkuo/votio/timepolicy"
)

var (
	errMissingCandidate = errors.New("candidate_id missing")
	errInvalidCandidate = errors.New("invalid candidate_id")
)

type VotingHandler struct {
	svc      *election.Service
	identity auth.VoterIdentity
	cfg      cliparse.Config
}

func NewVotingHandler(svc *election.Service, identity auth.VoterIdentity, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, identity: identity, cfg: cfg}
}

// Vote handles POST /vote.
//
// JSON requests get a VoteResponse. Form posts are redirected: to the
// results page after a vote, a repeated vote, or a vote after closing
// while results are still shown; home otherwise.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	asJSON := middleware.IsJSON(r)

	candidateID, err := h.candidateID(r, asJSON)
	if err != nil {
		middleware.JSONResponse(w, http.StatusBadRequest, models.VoteResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	res, err := h.svc.CastVote(r.Context(), candidateID, h.identity.VoterID(r))
	switch {
	case errors.Is(err, election.ErrNotFound):
		if !asJSON {
			middleware.Redirect(w, r, "/")
			return
		}
		middleware.JSONResponse(w, http.StatusNotFound, models.VoteResponse{
			Success: false,
			Message: "Candidate not found",
		})

	case errors.Is(err, election.ErrVotingClosed):
		if !asJSON {
			if res.State == timepolicy.StateClosed {
				middleware.Redirect(w, r, "/vote/"+res.ElectionCode)
				return
			}
			middleware.Redirect(w, r, "/")
			return
		}
		middleware.JSONResponse(w, http.StatusBadRequest, models.VoteResponse{
			Success: false,
			Message: "Voting has ended",
		})

	case errors.Is(err, election.ErrAlreadyVoted):
		if !asJSON {
			middleware.Redirect(w, r, "/vote/"+res.ElectionCode)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
			Success:    false,
			Message:    "You have already voted in this election",
			VotesCount: &res.VotesCount,
		})

	case err != nil:
		slog.Error("failed to record vote", "candidate_id", candidateID, "error", err)
		if !asJSON {
			middleware.SetFlash(w, h.cfg.SecretKey, "error", "Failed to record vote. Please try again.")
			middleware.Redirect(w, r, "/")
			return
		}
		middleware.JSONResponse(w, http.StatusInternalServerError, models.VoteResponse{
			Success: false,
			Message: "Database error",
		})

	default:
		if !asJSON {
			middleware.Redirect(w, r, "/vote/"+res.ElectionCode)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
			Success:    true,
			Message:    "Vote recorded",
			VotesCount: &res.VotesCount,
		})
	}
}

func (h *VotingHandler) candidateID(r *http.Request, asJSON bool) (int64, error) {
	if asJSON {
		var req models.VoteRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return 0, errMissingCandidate
		}
		return parseCandidateID(req.CandidateID)
	}
	return parseCandidateID(r.FormValue("candidate_id"))
}

// parseCandidateID accepts a JSON number or a decimal string
func parseCandidateID(v any) (int64, error) {
	switch id := v.(type) {
	case nil:
		return 0, errMissingCandidate
	case string:
		id = strings.TrimSpace(id)
		if id == "" {
			return 0, errMissingCandidate
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, errInvalidCandidate
		}
		return n, nil
	case bool:
		if !id {
			return 0, errMissingCandidate
		}
		return 0, errInvalidCandidate
	case float64:
		// A JSON zero reads as an absent id; a form "0" is a real lookup
		if id == 0 {
			return 0, errMissingCandidate
		}
		if id != math.Trunc(id) || math.Abs(id) > math.MaxInt64 {
			return 0, errInvalidCandidate
		}
		return int64(id), nil
	default:
		return 0, errInvalidCandidate
	}
}
