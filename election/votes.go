// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/votio/db"
	"github.com/danielhkuo/votio/metrics"
	"github.com/danielhkuo/votio/models"
	"github.com/danielhkuo/votio/timepolicy"
)

// VoteResult describes a vote attempt. ElectionCode and State are set
// whenever the candidate exists, including on ErrVotingClosed, so callers
// can decide where to send the voter.
type VoteResult struct {
	ElectionID   int64
	ElectionCode string
	CandidateID  int64
	VotesCount   int
	State        timepolicy.State
}

// CastVote records one vote for candidateID by voterID.
//
// The election is always taken from the candidate row. Voting is refused
// once the end time has passed; an unparseable end time leaves voting open.
// A second vote from the same voter returns ErrAlreadyVoted with the
// candidate's current count, including when two requests race and the
// unique constraint rejects the loser.
func (s *Service) CastVote(ctx context.Context, candidateID int64, voterID string) (VoteResult, error) {
	res := VoteResult{CandidateID: candidateID}

	e := models.Election{}
	err := s.conn.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT e.id, e.code, e.end_time
		FROM candidates c
		JOIN elections e ON e.id = c.election_id
		WHERE c.id = ?`), candidateID).Scan(&e.ID, &e.Code, &e.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		s.metrics.VoteRejected(metrics.ReasonNotFound)
		return res, ErrNotFound
	}
	if err != nil {
		return res, fmt.Errorf("failed to load candidate: %w", err)
	}
	res.ElectionID = e.ID
	res.ElectionCode = e.Code

	res.State, _, _ = s.evaluate(e)
	if res.State != timepolicy.StateOpen {
		s.metrics.VoteRejected(metrics.ReasonClosed)
		return res, ErrVotingClosed
	}

	voted, err := s.HasVoted(ctx, e.ID, voterID)
	if err != nil {
		return res, err
	}
	if voted {
		return s.alreadyVoted(ctx, res)
	}

	_, err = s.conn.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO votes (election_id, candidate_id, voter_ip, voted_at)
		VALUES (?, ?, ?, ?)`),
		e.ID, candidateID, voterID, timepolicy.Format(s.clock()))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return s.alreadyVoted(ctx, res)
		}
		return res, fmt.Errorf("failed to record vote: %w", err)
	}

	s.metrics.VoteCast()
	s.logger.Info("vote recorded",
		"election_id", e.ID,
		"candidate_id", candidateID,
	)

	res.VotesCount, err = s.countVotes(ctx, candidateID)
	return res, err
}

func (s *Service) alreadyVoted(ctx context.Context, res VoteResult) (VoteResult, error) {
	s.metrics.VoteRejected(metrics.ReasonAlreadyVoted)

	count, err := s.countVotes(ctx, res.CandidateID)
	if err != nil {
		return res, err
	}
	res.VotesCount = count
	return res, ErrAlreadyVoted
}

func (s *Service) countVotes(ctx context.Context, candidateID int64) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT COUNT(*) FROM votes WHERE candidate_id = ?`), candidateID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// candidates lists the candidates of an election in creation order with
// their vote counts
func (s *Service) candidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	rows, err := s.conn.QueryContext(ctx, s.dialect.Rebind(`
		SELECT c.id, c.election_id, c.name, c.vision, c.mission, c.photo_path, c.cv_path, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		WHERE c.election_id = ?
		GROUP BY c.id, c.election_id, c.name, c.vision, c.mission, c.photo_path, c.cv_path
		ORDER BY c.id`), electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var vision, mission, photo, cv sql.NullString
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &vision, &mission, &photo, &cv, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Vision = stringPtr(vision)
		c.Mission = stringPtr(mission)
		c.PhotoPath = stringPtr(photo)
		c.CVPath = stringPtr(cv)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// Tally returns every candidate with its count and percentage, and the
// total number of votes
func (s *Service) Tally(ctx context.Context, electionID int64) ([]models.CandidateResult, int, error) {
	candidates, err := s.candidates(ctx, electionID)
	if err != nil {
		return nil, 0, err
	}
	tally, total := BuildTally(candidates)
	return tally, total, nil
}

// BuildTally computes percentages of the total rounded to two decimals,
// half away from zero. With no votes every percentage is 0.
func BuildTally(candidates []models.Candidate) ([]models.CandidateResult, int) {
	total := 0
	for _, c := range candidates {
		total += c.Votes
	}

	tally := make([]models.CandidateResult, len(candidates))
	for i, c := range candidates {
		tally[i].Candidate = c
		if total > 0 {
			tally[i].Percentage = math.Round(float64(c.Votes)/float64(total)*100*100) / 100
		}
	}
	return tally, total
}

// Winners returns the leading candidates of an election and the primary
// winner when there is exactly one
func (s *Service) Winners(ctx context.Context, electionID int64) ([]models.CandidateResult, *models.CandidateResult, error) {
	tally, _, err := s.Tally(ctx, electionID)
	if err != nil {
		return nil, nil, err
	}
	winners, primary := DetermineWinners(tally)
	return winners, primary, nil
}

// DetermineWinners returns all candidates tied at the highest count. There
// are no winners while nobody has voted.
func DetermineWinners(tally []models.CandidateResult) ([]models.CandidateResult, *models.CandidateResult) {
	top := 0
	for _, c := range tally {
		if c.Votes > top {
			top = c.Votes
		}
	}

	winners := []models.CandidateResult{}
	if top == 0 {
		return winners, nil
	}
	for _, c := range tally {
		if c.Votes == top {
			winners = append(winners, c)
		}
	}

	if len(winners) == 1 {
		primary := winners[0]
		return winners, &primary
	}
	return winners, nil
}

// Results builds the results view. Expired elections are purged and
// reported as ErrNotFound.
func (s *Service) Results(ctx context.Context, code string) (*models.ElectionResults, error) {
	detail, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	tally, total := BuildTally(detail.Candidates)
	winners, primary := DetermineWinners(tally)

	voted := []models.CandidateResult{}
	for _, c := range tally {
		if c.Votes > 0 {
			voted = append(voted, c)
		}
	}

	res := &models.ElectionResults{
		Election:        detail.Election,
		State:           detail.State,
		Candidates:      tally,
		VotedCandidates: voted,
		TotalVotes:      total,
		Winners:         winners,
		PrimaryWinner:   primary,
	}

	if end, ok := timepolicy.Parse(detail.Election.EndTime); ok {
		expiry := timepolicy.PurgeAt(end)
		ms := expiry.UnixMilli()
		display := end.Format(timepolicy.DisplayLayout)
		res.ExpiryTsMs = &ms
		res.EndDisplay = &display
		res.PurgeIn = humanize.RelTime(expiry, s.clock(), "ago", "from now")
	}

	return res, nil
}
