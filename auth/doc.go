// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides election codes and voter identity.

# Election Codes

Codes are 3 random bytes from crypto/rand, hex encoded and upper-cased:

	code, err := auth.GenerateElectionCode() // e.g. "A1B2C3"

The generator does not check for collisions. The election service retries
until it finds an unused code.

# Voter Identity

There are no accounts. A voter is whoever sends the request, keyed by
client IP:

	id := auth.IPIdentity{}.VoterID(r)

The IP is the first X-Forwarded-For hop, then X-Real-IP, then the remote
address without its port. Voters behind one NAT share an identity and
therefore a single vote per election.

Tests substitute a fixed identity with VoterIDFunc.
*/
package auth
