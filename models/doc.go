// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Election: title, public code, start/end wall-clock text
  - Candidate: name, optional vision/mission/photo/CV, derived vote count
  - CandidateResult: Candidate plus percentage of all votes (pct)

# View Types

  - ElectionDetail: ballot page (election, state, voting_open, candidates)
  - ElectionResults: tally, voted candidates, winners, purge countdown

# Request Types

  - CreateElectionRequest: title, end_datetime, candidates
  - VoteRequest: candidate_id (number or numeric string)

# Response Types

  - CreateElectionResponse: code, url
  - VoteResponse: success, message, votes_count
  - CheckCodeResponse: exists
  - LandingResponse, CreateFormResponse: page data with pending flashes
  - ErrorResponse: error, message
*/
package models
