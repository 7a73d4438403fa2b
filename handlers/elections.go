// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/votio/auth"
	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/middleware"
	"github.com/danielhkuo/votio/models"
	"github.com/danielhkuo/votio/timepolicy"
	"github.com/danielhkuo/votio/uploads"
)

// FormEndOffset is the end time suggested to, and assumed for, a creation
// form submitted without one
const FormEndOffset = 12 * time.Hour

const maxFormMemory = 32 << 20

type ElectionHandler struct {
	svc      *election.Service
	identity auth.VoterIdentity
	cfg      cliparse.Config
	now      func() time.Time
}

func NewElectionHandler(svc *election.Service, identity auth.VoterIdentity, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{svc: svc, identity: identity, cfg: cfg, now: timepolicy.Now}
}

// Home handles GET /
func (h *ElectionHandler) Home(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.LandingResponse{
		Name:    "votio",
		Flashes: middleware.PopFlashes(w, r, h.cfg.SecretKey),
	})
}

// CreateForm handles GET /election
func (h *ElectionHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CreateFormResponse{
		DefaultEndDatetime: h.defaultEnd(),
		MinCandidates:      election.MinCandidates,
		PhotoExtensions:    uploads.PhotoExtensions,
		CVExtensions:       uploads.CVExtensions,
		Flashes:            middleware.PopFlashes(w, r, h.cfg.SecretKey),
	})
}

func (h *ElectionHandler) defaultEnd() string {
	return h.now().In(timepolicy.Location).Add(FormEndOffset).Format(timepolicy.FormLayout)
}

// formEndTime applies the form default to a blank end time
func (h *ElectionHandler) formEndTime(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return h.defaultEnd()
	}
	return raw
}

// Create handles POST /election. Browser forms are answered with
// redirects and flash messages, JSON bodies with JSON.
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.IsJSON(r) {
		h.createJSON(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("failed to parse election form", "error", err)
		middleware.SetFlash(w, h.cfg.SecretKey, "error", "Invalid form submission")
		middleware.Redirect(w, r, "/election")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	in := election.CreateInput{
		Title:   r.FormValue("title"),
		EndTime: h.formEndTime(r.FormValue("end_datetime")),
	}

	var files []io.Closer
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for i := 0; ; i++ {
		prefix := fmt.Sprintf("candidates[%d]", i)
		if _, ok := r.Form[prefix+"[name]"]; !ok {
			break
		}

		c := election.CandidateInput{
			Name:    r.FormValue(prefix + "[name]"),
			Vision:  r.FormValue(prefix + "[vision]"),
			Mission: r.FormValue(prefix + "[mission]"),
		}
		c.Photo = formUpload(r, prefix+"[photo]", &files)
		c.CV = formUpload(r, prefix+"[cv]", &files)
		in.Candidates = append(in.Candidates, c)
	}

	e, err := h.svc.Create(r.Context(), in)
	var verr *election.ValidationError
	if errors.As(err, &verr) {
		middleware.SetFlash(w, h.cfg.SecretKey, "error", verr.Msg)
		middleware.Redirect(w, r, "/election")
		return
	}
	if err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.SetFlash(w, h.cfg.SecretKey, "error", "Failed to create election. Please try again.")
		middleware.Redirect(w, r, "/election")
		return
	}

	middleware.Redirect(w, r, "/election/"+e.Code)
}

// formUpload returns the file posted under key, or nil
func formUpload(r *http.Request, key string, files *[]io.Closer) *election.Upload {
	if r.MultipartForm == nil {
		return nil
	}

	f, hdr, err := r.FormFile(key)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("failed to read uploaded file", "field", key, "error", err)
		}
		return nil
	}
	*files = append(*files, f)

	return &election.Upload{Filename: hdr.Filename, Content: f}
}

func (h *ElectionHandler) createJSON(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	in := election.CreateInput{
		Title:   req.Title,
		EndTime: h.formEndTime(req.EndDatetime),
	}
	for _, c := range req.Candidates {
		in.Candidates = append(in.Candidates, election.CandidateInput{
			Name:    c.Name,
			Vision:  c.Vision,
			Mission: c.Mission,
		})
	}

	e, err := h.svc.Create(r.Context(), in)
	var verr *election.ValidationError
	if errors.As(err, &verr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Msg)
		return
	}
	if err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		Code: e.Code,
		URL:  "/election/" + e.Code,
	})
}

// Detail handles GET /election/{code}
func (h *ElectionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	detail, err := h.svc.GetByCode(r.Context(), code)
	if errors.Is(err, election.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to load election", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load election")
		return
	}

	voted, err := h.svc.HasVoted(r.Context(), detail.Election.ID, h.identity.VoterID(r))
	if err != nil {
		slog.Warn("failed to check previous vote", "election_id", detail.Election.ID, "error", err)
	}
	if voted {
		middleware.Redirect(w, r, "/vote/"+code)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// CheckCode handles GET /api/check_code. It always answers 200.
func (h *ElectionHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		middleware.JSONResponse(w, http.StatusOK, models.CheckCodeResponse{Exists: false})
		return
	}

	exists, err := h.svc.CodeExists(r.Context(), code)
	if err != nil {
		slog.Error("failed to check election code", "code", code, "error", err)
		exists = false
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckCodeResponse{Exists: exists})
}
