// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/votio/auth"
	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/testutil"
	"github.com/danielhkuo/votio/uploads"
)

type testEnv struct {
	conn  *sql.DB
	cfg   cliparse.Config
	store *uploads.DiskStore
	svc   *election.Service
}

func setupEnv(t *testing.T, opts ...election.Option) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	store, err := uploads.NewDiskStore(cfg.UploadDir)
	if err != nil {
		t.Fatalf("Failed to create upload store: %v", err)
	}

	opts = append([]election.Option{election.WithUploads(store)}, opts...)
	return &testEnv{
		conn:  conn,
		cfg:   cfg,
		store: store,
		svc:   election.New(conn, testutil.Dialect, opts...),
	}
}

func (e *testEnv) electionHandler() *ElectionHandler {
	return NewElectionHandler(e.svc, auth.IPIdentity{}, e.cfg)
}

func (e *testEnv) votingHandler() *VotingHandler {
	return NewVotingHandler(e.svc, auth.IPIdentity{}, e.cfg)
}

// formRequest builds a urlencoded POST from a voter IP
func formRequest(path string, values url.Values, ip string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = ip + ":40000"
	return req
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	testutil.AssertStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

func future() string {
	return testutil.EndIn(time.Hour)
}
