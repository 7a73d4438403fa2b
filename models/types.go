package models

// Domain types

// Election timestamps are naive Asia/Jakarta wall-clock text
// (YYYY-MM-DD HH:MM:SS). EndTime may hold an unparseable string as entered.
type Election struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

type Candidate struct {
	ID         int64   `json:"id"`
	ElectionID int64   `json:"election_id"`
	Name       string  `json:"name"`
	Vision     *string `json:"vision,omitempty"`
	Mission    *string `json:"mission,omitempty"`
	PhotoPath  *string `json:"photo_path,omitempty"`
	CVPath     *string `json:"cv_path,omitempty"`
	Votes      int     `json:"votes"`
}

type CandidateResult struct {
	Candidate
	Percentage float64 `json:"pct"`
}

// View types

type ElectionDetail struct {
	Election   Election    `json:"election"`
	State      string      `json:"state"`
	VotingOpen bool        `json:"voting_open"`
	Candidates []Candidate `json:"candidates"`
}

type ElectionResults struct {
	Election        Election          `json:"election"`
	State           string            `json:"state"`
	Candidates      []CandidateResult `json:"candidates"`
	VotedCandidates []CandidateResult `json:"voted_candidates"`
	TotalVotes      int               `json:"total_votes"`
	Winners         []CandidateResult `json:"winners"`
	PrimaryWinner   *CandidateResult  `json:"primary_winner"`
	ExpiryTsMs      *int64            `json:"expiry_ts_ms"`
	EndDisplay      *string           `json:"end_dt_display"`
	PurgeIn         string            `json:"purge_in,omitempty"`
}

// Request types

type CandidateRequest struct {
	Name    string `json:"name"`
	Vision  string `json:"vision"`
	Mission string `json:"mission"`
}

type CreateElectionRequest struct {
	Title       string             `json:"title"`
	EndDatetime string             `json:"end_datetime"`
	Candidates  []CandidateRequest `json:"candidates"`
}

// CandidateID is a number or a numeric string
type VoteRequest struct {
	CandidateID any `json:"candidate_id"`
}

// Response types

type CreateElectionResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type VoteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	VotesCount *int   `json:"votes_count,omitempty"`
}

type CheckCodeResponse struct {
	Exists bool `json:"exists"`
}

type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type LandingResponse struct {
	Name    string         `json:"name"`
	Flashes []FlashMessage `json:"flashes"`
}

type CreateFormResponse struct {
	DefaultEndDatetime string         `json:"default_end_datetime"`
	MinCandidates      int            `json:"min_candidates"`
	PhotoExtensions    []string       `json:"photo_extensions"`
	CVExtensions       []string       `json:"cv_extensions"`
	Flashes            []FlashMessage `json:"flashes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
