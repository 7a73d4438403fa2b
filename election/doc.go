// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election manages the lifecycle of elections and the integrity of
their votes.

# Service

All operations hang off one Service built around a connection pool:

	svc := election.New(conn, db.MySQL,
		election.WithUploads(store),
		election.WithMetrics(m),
	)

There is no package state; handlers receive the service explicitly.

# Lifecycle

	open ──end_time──> closed ──+24h──> expired (purged on next access)

Create validates the request (title, at least two candidates, every name
set), draws an unused code and writes the election with its candidates in
one transaction. Candidate files with allowed extensions are saved through
the upload store; other files are dropped.

GetByCode and Results check the window on every read. An expired election
is deleted with its candidates and votes and reported as ErrNotFound.
There is no background sweeper, so an expired election stays in the
database until someone asks for it.

An end time that cannot be parsed never closes voting.

# Votes

CastVote enforces one vote per voter per election. The check before the
insert handles the common case; the UNIQUE (voter_ip, election_id)
constraint settles concurrent requests, and its violation is returned as
ErrAlreadyVoted.

# Tally

Percentages are rounded to two decimals. Winners are all candidates tied
at the highest non-zero count; PrimaryWinner is set only when there is
exactly one.
*/
package election
