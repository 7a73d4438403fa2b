// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danielhkuo/votio/db"
	"github.com/danielhkuo/votio/models"
	"github.com/danielhkuo/votio/timepolicy"
	"github.com/danielhkuo/votio/uploads"
)

// MinCandidates is the smallest ballot an election may be created with
const MinCandidates = 2

// DefaultDuration is the voting window given to an election created
// without an end time
const DefaultDuration = 24 * time.Hour

type Upload struct {
	Filename string
	Content  io.Reader
}

type CandidateInput struct {
	Name    string
	Vision  string
	Mission string
	Photo   *Upload
	CV      *Upload
}

type CreateInput struct {
	Title      string
	EndTime    string
	Candidates []CandidateInput
}

// Validate returns the first problem with in, checking the title, then the
// candidate count, then each candidate name in order.
func Validate(in CreateInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Msg: "Election title is required"}
	}
	if len(in.Candidates) < MinCandidates {
		return &ValidationError{Msg: fmt.Sprintf("At least %d candidates are required", MinCandidates)}
	}
	for i, c := range in.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			return &ValidationError{Msg: fmt.Sprintf("Candidate name at position %d is required", i+1)}
		}
	}
	return nil
}

// resolveEndTime normalizes a form-entered end time to the storage layout.
// Month, day, hour and minute may be unpadded. Values that do not match
// the form layout are kept verbatim.
func resolveEndTime(raw string, now time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return timepolicy.Format(now.Add(DefaultDuration))
	}
	t, err := time.ParseInLocation(timepolicy.FormInputLayout, raw, timepolicy.Location)
	if err != nil {
		return raw
	}
	return timepolicy.Format(t)
}

// Create validates in and stores the election with its candidates in one
// transaction. A code collision at insert time restarts the transaction
// with a fresh code. The collision can only happen before any upload is
// read, so a restart still has every file's content.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Election, error) {
	if err := Validate(in); err != nil {
		return models.Election{}, err
	}

	now := s.clock()
	e := models.Election{
		Title:     strings.TrimSpace(in.Title),
		StartTime: timepolicy.Format(now),
		EndTime:   resolveEndTime(in.EndTime, now),
		CreatedAt: timepolicy.Format(now),
	}

	for {
		if err := ctx.Err(); err != nil {
			return models.Election{}, err
		}

		created, saved, err := s.createTx(ctx, e, in.Candidates)
		if err == nil {
			s.metrics.ElectionCreated()
			s.logger.Info("election created",
				"election_id", created.ID,
				"code", created.Code,
				"candidates", len(in.Candidates),
			)
			return created, nil
		}

		s.removeUploads(saved)
		if !errors.Is(err, errCodeTaken) {
			return models.Election{}, err
		}
		s.logger.Warn("election code collision, retrying", "code", created.Code)
	}
}

func (s *Service) createTx(ctx context.Context, e models.Election, candidates []CandidateInput) (_ models.Election, saved []string, err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return e, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e.Code, err = s.unusedCode(ctx, tx)
	if err != nil {
		return e, nil, err
	}

	e.ID, err = s.dialect.InsertID(ctx, tx, `
		INSERT INTO elections (title, code, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Title, e.Code, e.StartTime, e.EndTime, e.CreatedAt)
	if db.IsUniqueViolation(err) {
		return e, nil, fmt.Errorf("%w: %w", errCodeTaken, err)
	}
	if err != nil {
		return e, nil, fmt.Errorf("failed to insert election: %w", err)
	}

	for i, c := range candidates {
		photo, err := s.saveUpload(ctx, e.ID, i, uploads.KindPhoto, c.Photo, &saved)
		if err != nil {
			return e, saved, err
		}
		cv, err := s.saveUpload(ctx, e.ID, i, uploads.KindCV, c.CV, &saved)
		if err != nil {
			return e, saved, err
		}

		_, err = tx.ExecContext(ctx, s.dialect.Rebind(`
			INSERT INTO candidates (election_id, name, vision, mission, photo_path, cv_path)
			VALUES (?, ?, ?, ?, ?, ?)`),
			e.ID, strings.TrimSpace(c.Name), nullString(c.Vision), nullString(c.Mission), nullString(photo), nullString(cv))
		if err != nil {
			return e, saved, fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return e, saved, fmt.Errorf("failed to commit election: %w", err)
	}
	return e, saved, nil
}

// unusedCode draws codes until one is not taken
func (s *Service) unusedCode(ctx context.Context, q db.Querier) (string, error) {
	for {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		exists, err := s.codeExists(ctx, q, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// saveUpload stores u under its deterministic name and returns that name.
// Missing files and disallowed extensions yield an empty name.
func (s *Service) saveUpload(ctx context.Context, electionID int64, index int, kind uploads.Kind, u *Upload, saved *[]string) (string, error) {
	if u == nil || u.Filename == "" || u.Content == nil {
		return "", nil
	}
	if !uploads.Allowed(u.Filename, kind) {
		s.logger.Debug("ignoring upload with disallowed extension",
			"election_id", electionID,
			"kind", kind,
			"filename", u.Filename,
		)
		return "", nil
	}
	if s.store == nil {
		s.logger.Debug("no upload store configured, ignoring file", "filename", u.Filename)
		return "", nil
	}

	name := uploads.StoredName(electionID, index, kind, u.Filename)
	if err := s.store.Save(ctx, name, u.Content); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", kind, err)
	}
	*saved = append(*saved, name)
	return name, nil
}

func (s *Service) removeUploads(names []string) {
	if s.store == nil {
		return
	}
	for _, name := range names {
		if err := s.store.Delete(context.Background(), name); err != nil {
			s.logger.Error("failed to remove upload", "name", name, "error", err)
		}
	}
}

// GetByCode returns the ballot view of an election. Expired elections are
// purged and reported as ErrNotFound.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.ElectionDetail, error) {
	e, err := s.electionByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	state, err := s.liveState(ctx, e)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidates(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	return &models.ElectionDetail{
		Election:   e,
		State:      state.String(),
		VotingOpen: state == timepolicy.StateOpen,
		Candidates: candidates,
	}, nil
}

// liveState evaluates the window of e and purges it when expired
func (s *Service) liveState(ctx context.Context, e models.Election) (timepolicy.State, error) {
	state, _, _ := s.evaluate(e)
	if state != timepolicy.StateExpired {
		return state, nil
	}

	if err := s.Purge(ctx, e.ID); err != nil {
		return state, err
	}
	return state, ErrNotFound
}

func (s *Service) electionByCode(ctx context.Context, code string) (models.Election, error) {
	var e models.Election
	err := s.conn.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT id, code, title, start_time, end_time, created_at
		FROM elections WHERE code = ?`), code).
		Scan(&e.ID, &e.Code, &e.Title, &e.StartTime, &e.EndTime, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	if err != nil {
		return e, fmt.Errorf("failed to load election: %w", err)
	}
	return e, nil
}

// Purge deletes an election with its votes and candidates in one
// transaction, then removes its stored files.
func (s *Service) Purge(ctx context.Context, electionID int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	files, err := s.candidateFiles(ctx, tx, electionID)
	if err != nil {
		return err
	}

	for _, query := range []string{
		`DELETE FROM votes WHERE election_id = ?`,
		`DELETE FROM candidates WHERE election_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, s.dialect.Rebind(query), electionID); err != nil {
			return fmt.Errorf("failed to purge election: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM elections WHERE id = ?`), electionID)
	if err != nil {
		return fmt.Errorf("failed to purge election: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purge: %w", err)
	}

	if deleted > 0 {
		s.metrics.ElectionPurged()
		s.logger.Info("expired election purged", "election_id", electionID)
	}
	s.removeUploads(files)
	return nil
}

func (s *Service) candidateFiles(ctx context.Context, q db.Querier, electionID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, s.dialect.Rebind(`
		SELECT photo_path, cv_path FROM candidates WHERE election_id = ?`), electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var photo, cv sql.NullString
		if err := rows.Scan(&photo, &cv); err != nil {
			return nil, fmt.Errorf("failed to scan candidate files: %w", err)
		}
		for _, f := range []sql.NullString{photo, cv} {
			if f.Valid && f.String != "" {
				files = append(files, f.String)
			}
		}
	}
	return files, rows.Err()
}

// CodeExists reports whether an election currently uses code
func (s *Service) CodeExists(ctx context.Context, code string) (bool, error) {
	return s.codeExists(ctx, s.conn, code)
}

func (s *Service) codeExists(ctx context.Context, q db.Querier, code string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT 1 FROM elections WHERE code = ?`), code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check election code: %w", err)
	}
	return true, nil
}

// HasVoted reports whether voterID already voted in the election
func (s *Service) HasVoted(ctx context.Context, electionID int64, voterID string) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT 1 FROM votes WHERE election_id = ? AND voter_ip = ?`),
		electionID, voterID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return true, nil
}
