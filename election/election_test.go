// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/danielhkuo/votio/metrics"
	"github.com/danielhkuo/votio/testutil"
	"github.com/danielhkuo/votio/timepolicy"
	"github.com/danielhkuo/votio/uploads"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: timepolicy.Now()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func twoCandidates() []CandidateInput {
	return []CandidateInput{{Name: "Ana"}, {Name: "Budi"}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr string
	}{
		{"valid", CreateInput{Title: "Ketua", Candidates: twoCandidates()}, ""},
		{"blank title", CreateInput{Title: "   ", Candidates: twoCandidates()}, "Election title is required"},
		{"title checked first", CreateInput{Title: "", Candidates: nil}, "Election title is required"},
		{"one candidate", CreateInput{Title: "Ketua", Candidates: []CandidateInput{{Name: "Ana"}}}, "At least 2 candidates are required"},
		{"count checked before names", CreateInput{Title: "Ketua", Candidates: []CandidateInput{{Name: ""}}}, "At least 2 candidates are required"},
		{
			"first empty name reported",
			CreateInput{Title: "Ketua", Candidates: []CandidateInput{{Name: "Ana"}, {Name: " "}, {Name: ""}}},
			"Candidate name at position 2 is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Msg != tt.wantErr {
				t.Errorf("message = %q, want %q", verr.Msg, tt.wantErr)
			}
		})
	}
}

func TestResolveEndTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, timepolicy.Location)

	tests := []struct {
		raw  string
		want string
	}{
		{"", "2025-03-02 10:00:00"},
		{"  ", "2025-03-02 10:00:00"},
		{"2025-03-05 18:30", "2025-03-05 18:30:00"},
		{"2025-1-5 9:30", "2025-01-05 09:30:00"},
		{"2025-03-05 7:5", "2025-03-05 07:05:00"},
		{"2025-03-05 18:30:15", "2025-03-05 18:30:15"},
		{"next friday", "next friday"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := resolveEndTime(tt.raw, now); got != tt.want {
				t.Errorf("resolveEndTime(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	clock := newTestClock()
	svc := New(conn, testutil.Dialect, WithClock(clock.Now))
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{
		Title: " Ketua ",
		Candidates: []CandidateInput{
			{Name: "Ana", Vision: "Maju", Mission: "Bersama"},
			{Name: "Budi"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(e.Code) != 6 || strings.ToUpper(e.Code) != e.Code {
		t.Errorf("code %q is not 6 uppercase chars", e.Code)
	}
	if e.Title != "Ketua" {
		t.Errorf("title = %q", e.Title)
	}

	end, ok := timepolicy.Parse(e.EndTime)
	if !ok {
		t.Fatalf("end time %q not parseable", e.EndTime)
	}
	if got := end.Sub(clock.Now()); got < DefaultDuration-time.Second || got > DefaultDuration {
		t.Errorf("end time is %v after now, want %v", got, DefaultDuration)
	}

	detail, err := svc.GetByCode(ctx, e.Code)
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if !detail.VotingOpen || detail.State != "open" {
		t.Errorf("expected open election, got state %s", detail.State)
	}
	if len(detail.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(detail.Candidates))
	}

	ana, budi := detail.Candidates[0], detail.Candidates[1]
	if ana.Name != "Ana" || ana.Vision == nil || *ana.Vision != "Maju" {
		t.Errorf("unexpected first candidate: %+v", ana)
	}
	if budi.Vision != nil || budi.Mission != nil || budi.PhotoPath != nil {
		t.Errorf("empty optional fields should be null: %+v", budi)
	}
}

func TestCreateValidationWritesNothing(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:      "Ketua",
		Candidates: []CandidateInput{{Name: "Ana"}},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var n int
	conn.QueryRow("SELECT COUNT(*) FROM elections").Scan(&n)
	if n != 0 {
		t.Errorf("expected no elections, got %d", n)
	}
}

func TestCreateSkipsTakenCodes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	_, taken, _ := testutil.CreateTestElection(t, conn, testutil.EndIn(time.Hour), "A", "B")

	codes := []string{taken, taken, "BEEF01"}
	gen := func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	svc := New(conn, testutil.Dialect, WithCodeGenerator(gen))
	e, err := svc.Create(context.Background(), CreateInput{Title: "Ketua", Candidates: twoCandidates()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.Code != "BEEF01" {
		t.Errorf("code = %q, want BEEF01", e.Code)
	}
}

func TestCreateRetriesCodeTakenAtInsert(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, err := uploads.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Another writer claims AAAAAA between the existence check and the insert
	_, err = conn.Exec(`
		CREATE TRIGGER claim_code BEFORE INSERT ON elections
		WHEN NEW.code = 'AAAAAA'
		BEGIN
			INSERT INTO elections (title, code, start_time, end_time, created_at)
			VALUES ('other', NEW.code, NEW.start_time, NEW.end_time, NEW.created_at);
		END`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	codes := []string{"AAAAAA", "BBBBBB"}
	gen := func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	svc := New(conn, testutil.Dialect, WithUploads(store), WithCodeGenerator(gen))
	e, err := svc.Create(context.Background(), CreateInput{
		Title: "Ketua",
		Candidates: []CandidateInput{
			{Name: "Ana", Photo: &Upload{Filename: "ana.png", Content: strings.NewReader("ana-photo")}},
			{Name: "Budi", CV: &Upload{Filename: "budi.pdf", Content: strings.NewReader("budi-cv")}},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.Code != "BBBBBB" {
		t.Errorf("code = %q, want BBBBBB", e.Code)
	}

	files := map[string]string{
		uploads.StoredName(e.ID, 0, uploads.KindPhoto, "ana.png"): "ana-photo",
		uploads.StoredName(e.ID, 1, uploads.KindCV, "budi.pdf"):   "budi-cv",
	}
	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || string(data) != want {
			t.Errorf("%s = %q, %v; want %q", name, data, err, want)
		}
	}

	var n int
	conn.QueryRow("SELECT COUNT(*) FROM elections").Scan(&n)
	if n != 1 {
		t.Errorf("expected 1 election, found %d", n)
	}
}

func TestCreateWithUploads(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, err := uploads.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(conn, testutil.Dialect, WithUploads(store))
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{
		Title: "Ketua",
		Candidates: []CandidateInput{
			{
				Name:  "Ana",
				Photo: &Upload{Filename: "ana face.JPG", Content: strings.NewReader("jpeg")},
				CV:    &Upload{Filename: "ana.pdf", Content: strings.NewReader("pdf")},
			},
			{
				Name:  "Budi",
				Photo: &Upload{Filename: "budi.bmp", Content: strings.NewReader("bmp")},
				CV:    &Upload{Filename: "budi.docx", Content: strings.NewReader("docx")},
			},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	detail, err := svc.GetByCode(ctx, e.Code)
	if err != nil {
		t.Fatal(err)
	}
	ana, budi := detail.Candidates[0], detail.Candidates[1]

	wantPhoto := uploads.StoredName(e.ID, 0, uploads.KindPhoto, "ana face.JPG")
	if ana.PhotoPath == nil || *ana.PhotoPath != wantPhoto {
		t.Errorf("photo path = %v, want %q", ana.PhotoPath, wantPhoto)
	}
	if ana.CVPath == nil {
		t.Error("expected CV to be stored")
	}
	if budi.PhotoPath != nil || budi.CVPath != nil {
		t.Errorf("disallowed files should be ignored: %+v", budi)
	}

	data, err := os.ReadFile(filepath.Join(dir, wantPhoto))
	if err != nil || string(data) != "jpeg" {
		t.Errorf("stored photo = %q, %v", data, err)
	}
}

// failingStore fails on the second candidate's files
type failingStore struct {
	*uploads.DiskStore
}

func (s failingStore) Save(ctx context.Context, name string, r io.Reader) error {
	if strings.Contains(name, "_1_") {
		return errors.New("disk full")
	}
	return s.DiskStore.Save(ctx, name, r)
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	disk, _ := uploads.NewDiskStore(dir)
	svc := New(conn, testutil.Dialect, WithUploads(failingStore{disk}))

	_, err := svc.Create(context.Background(), CreateInput{
		Title: "Ketua",
		Candidates: []CandidateInput{
			{Name: "Ana", Photo: &Upload{Filename: "a.png", Content: strings.NewReader("a")}},
			{Name: "Budi", Photo: &Upload{Filename: "b.png", Content: strings.NewReader("b")}},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var n int
	conn.QueryRow("SELECT COUNT(*) FROM elections").Scan(&n)
	if n != 0 {
		t.Errorf("expected rollback, found %d elections", n)
	}
	conn.QueryRow("SELECT COUNT(*) FROM candidates").Scan(&n)
	if n != 0 {
		t.Errorf("expected rollback, found %d candidates", n)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected saved files to be removed, found %d", len(entries))
	}
}

func TestCastVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := metrics.New(nil)
	svc := New(conn, testutil.Dialect, WithMetrics(reg))
	ctx := context.Background()

	electionID, code, ids := testutil.CreateTestElection(t, conn, testutil.EndIn(time.Hour), "Ana", "Budi")

	res, err := svc.CastVote(ctx, ids[0], "1.2.3.4")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if res.VotesCount != 1 || res.ElectionCode != code || res.ElectionID != electionID {
		t.Errorf("unexpected result: %+v", res)
	}

	// Same voter, other candidate
	res, err = svc.CastVote(ctx, ids[1], "1.2.3.4")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if res.VotesCount != 0 {
		t.Errorf("already voted count = %d, want Budi's 0", res.VotesCount)
	}

	tally, total, err := svc.Tally(ctx, electionID)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || tally[0].Votes != 1 || tally[1].Votes != 0 {
		t.Errorf("unexpected tally: total=%d %+v", total, tally)
	}

	if got := promtest.ToFloat64(reg.VotesCast); got != 1 {
		t.Errorf("votes cast counter = %v, want 1", got)
	}
	if got := promtest.ToFloat64(reg.VotesRejected.WithLabelValues(metrics.ReasonAlreadyVoted)); got != 1 {
		t.Errorf("already voted counter = %v, want 1", got)
	}

	voted, _ := svc.HasVoted(ctx, electionID, "1.2.3.4")
	if !voted {
		t.Error("HasVoted should be true")
	}
	voted, _ = svc.HasVoted(ctx, electionID, "5.6.7.8")
	if voted {
		t.Error("HasVoted should be false for a new voter")
	}
}

func TestCastVoteUnknownCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)

	if _, err := svc.CastVote(context.Background(), 999, "1.2.3.4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCastVoteWindow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	clock := newTestClock()
	svc := New(conn, testutil.Dialect, WithClock(clock.Now))
	ctx := context.Background()

	_, code, ids := testutil.CreateTestElection(t, conn, timepolicy.Format(clock.Now().Add(time.Hour)), "Ana", "Budi")

	clock.Advance(2 * time.Hour)
	res, err := svc.CastVote(ctx, ids[0], "1.2.3.4")
	if !errors.Is(err, ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
	if res.State != timepolicy.StateClosed || res.ElectionCode != code {
		t.Errorf("unexpected result: %+v", res)
	}

	clock.Advance(24 * time.Hour)
	res, err = svc.CastVote(ctx, ids[0], "1.2.3.4")
	if !errors.Is(err, ErrVotingClosed) || res.State != timepolicy.StateExpired {
		t.Errorf("expected expired rejection, got %+v %v", res, err)
	}
}

func TestCastVoteUnparseableEndTimeStaysOpen(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)

	_, _, ids := testutil.CreateTestElection(t, conn, "someday", "Ana", "Budi")

	res, err := svc.CastVote(context.Background(), ids[1], "1.2.3.4")
	if err != nil {
		t.Fatalf("expected vote to be accepted, got %v", err)
	}
	if res.State != timepolicy.StateOpen {
		t.Errorf("state = %s, want open", res.State)
	}
}

func TestConcurrentVotesSameVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)
	ctx := context.Background()

	electionID, _, ids := testutil.CreateTestElection(t, conn, testutil.EndIn(time.Hour), "Ana", "Budi")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CastVote(ctx, ids[i%2], "9.9.9.9")
		}(i)
	}
	wg.Wait()

	success, already := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrAlreadyVoted):
			already++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if success != 1 || already != attempts-1 {
		t.Errorf("success=%d already=%d, want 1 and %d", success, already, attempts-1)
	}
	if n := testutil.CountRows(t, conn, "votes", electionID); n != 1 {
		t.Errorf("expected 1 vote row, got %d", n)
	}
}

func TestCastVoteUniqueViolationAtInsert(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	reg := metrics.New(nil)
	svc := New(conn, testutil.Dialect, WithMetrics(reg))

	_, _, ids := testutil.CreateTestElection(t, conn, testutil.EndIn(time.Hour), "Ana", "Budi")

	// A concurrent ballot from the same voter lands after the HasVoted check
	_, err := conn.Exec(`
		CREATE TRIGGER concurrent_ballot BEFORE INSERT ON votes
		BEGIN
			INSERT INTO votes (election_id, candidate_id, voter_ip, voted_at)
			VALUES (NEW.election_id, NEW.candidate_id, NEW.voter_ip, NEW.voted_at);
		END`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	_, err = svc.CastVote(context.Background(), ids[0], "4.4.4.4")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	if got := promtest.ToFloat64(reg.VotesCast); got != 0 {
		t.Errorf("votes cast counter = %v, want 0", got)
	}
	if got := promtest.ToFloat64(reg.VotesRejected.WithLabelValues(metrics.ReasonAlreadyVoted)); got != 1 {
		t.Errorf("already voted counter = %v, want 1", got)
	}
}

func TestGetByCode(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	clock := newTestClock()
	svc := New(conn, testutil.Dialect, WithClock(clock.Now))
	ctx := context.Background()

	if _, err := svc.GetByCode(ctx, "NOPE00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	electionID, code, ids := testutil.CreateTestElection(t, conn, timepolicy.Format(clock.Now().Add(time.Hour)), "Ana", "Budi")
	testutil.CastTestVote(t, conn, electionID, ids[0], "1.2.3.4")

	clock.Advance(2 * time.Hour)
	detail, err := svc.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("closed election should be visible: %v", err)
	}
	if detail.VotingOpen || detail.State != "closed" {
		t.Errorf("expected closed state, got %s", detail.State)
	}
	if detail.Candidates[0].Votes != 1 {
		t.Errorf("Ana votes = %d, want 1", detail.Candidates[0].Votes)
	}

	clock.Advance(24 * time.Hour)
	if _, err := svc.GetByCode(ctx, code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired election to be gone, got %v", err)
	}

	for _, table := range []string{"elections", "candidates", "votes"} {
		if n := testutil.CountRows(t, conn, table, electionID); n != 0 {
			t.Errorf("%s still has %d rows", table, n)
		}
	}

	exists, err := svc.CodeExists(ctx, code)
	if err != nil || exists {
		t.Errorf("code should be free after purge: exists=%v err=%v", exists, err)
	}
}

func TestPurgeRemovesUploads(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, _ := uploads.NewDiskStore(dir)
	svc := New(conn, testutil.Dialect, WithUploads(store))
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{
		Title: "Ketua",
		Candidates: []CandidateInput{
			{Name: "Ana", Photo: &Upload{Filename: "a.png", Content: strings.NewReader("a")}},
			{Name: "Budi"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Purge(ctx, e.ID); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected uploads removed, found %d files", len(entries))
	}
}

func TestResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	clock := newTestClock()
	svc := New(conn, testutil.Dialect, WithClock(clock.Now))
	ctx := context.Background()

	end := clock.Now().Add(time.Hour).Truncate(time.Second)
	electionID, code, ids := testutil.CreateTestElection(t, conn, timepolicy.Format(end), "Ana", "Budi", "Citra")
	testutil.CastTestVote(t, conn, electionID, ids[0], "1.1.1.1")
	testutil.CastTestVote(t, conn, electionID, ids[0], "2.2.2.2")
	testutil.CastTestVote(t, conn, electionID, ids[1], "3.3.3.3")

	res, err := svc.Results(ctx, code)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}

	if res.TotalVotes != 3 {
		t.Errorf("total = %d, want 3", res.TotalVotes)
	}
	if res.Candidates[0].Percentage != 66.67 || res.Candidates[1].Percentage != 33.33 || res.Candidates[2].Percentage != 0 {
		t.Errorf("unexpected percentages: %+v", res.Candidates)
	}
	if len(res.VotedCandidates) != 2 {
		t.Errorf("voted candidates = %d, want 2", len(res.VotedCandidates))
	}
	if res.PrimaryWinner == nil || res.PrimaryWinner.Name != "Ana" {
		t.Errorf("primary winner = %+v, want Ana", res.PrimaryWinner)
	}

	if res.ExpiryTsMs == nil || *res.ExpiryTsMs != end.Add(24*time.Hour).UnixMilli() {
		t.Errorf("expiry = %v", res.ExpiryTsMs)
	}
	if res.EndDisplay == nil || *res.EndDisplay != end.Format("02 / 01 / 2006 15:04") {
		t.Errorf("end display = %v", res.EndDisplay)
	}
	if !strings.HasSuffix(res.PurgeIn, "from now") {
		t.Errorf("purge in = %q", res.PurgeIn)
	}

	// Reads have no side effects
	again, err := svc.Results(ctx, code)
	if err != nil || again.TotalVotes != res.TotalVotes {
		t.Errorf("second read differs: %+v %v", again, err)
	}
}

func TestResultsTie(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)

	electionID, code, ids := testutil.CreateTestElection(t, conn, testutil.EndIn(time.Hour), "Ana", "Budi")
	testutil.CastTestVote(t, conn, electionID, ids[0], "1.1.1.1")
	testutil.CastTestVote(t, conn, electionID, ids[1], "2.2.2.2")

	res, err := svc.Results(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Winners) != 2 {
		t.Errorf("winners = %d, want 2", len(res.Winners))
	}
	if res.PrimaryWinner != nil {
		t.Errorf("tie should have no primary winner, got %+v", res.PrimaryWinner)
	}
}

func TestResultsUnparseableEndTime(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := New(conn, testutil.Dialect)

	_, code, _ := testutil.CreateTestElection(t, conn, "someday", "Ana", "Budi")

	res, err := svc.Results(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}
	if res.ExpiryTsMs != nil || res.EndDisplay != nil || res.PurgeIn != "" {
		t.Errorf("expected no expiry fields, got %+v", res)
	}
	if len(res.Winners) != 0 || res.PrimaryWinner != nil {
		t.Error("no votes means no winners")
	}
}
