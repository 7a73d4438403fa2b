// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Votio API.

# Handler Types

  - ElectionHandler: landing, creation form, create, ballot, code check
  - VotingHandler: vote submission
  - ResultsHandler: tally and winners
  - UploadHandler: candidate media

Handlers receive the election service, the voter identity and the config:

	electionHandler := handlers.NewElectionHandler(svc, auth.IPIdentity{}, cfg)

# Forms and JSON

The endpoints serve both browser forms and JSON clients. Form posts are
answered with 302 redirects; errors are carried to the next page in a
flash cookie. JSON requests get a JSON body and a status code.

	POST /election (form) → /election/{code}, or /election with a flash
	POST /election (JSON) → 201 {code, url} | 400 | 500

	POST /vote (JSON) → 200 {success, message, votes_count}
	                    400 missing or invalid id, voting ended
	                    404 unknown candidate
	                    500 database error
	POST /vote (form) → /vote/{code} after voting, after a repeat vote, or
	                    when voting ended less than 24h ago; / otherwise

# Creation Form Fields

	title, end_datetime (YYYY-MM-DD HH:MM, blank for 12h from now)
	candidates[i][name], candidates[i][vision], candidates[i][mission]
	candidates[i][photo], candidates[i][cv] (files)

Candidates are read from index 0 until a name field is missing.
*/
package handlers
