// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package timepolicy normalizes election timestamps and derives voting windows.

# Timezone

All timestamps are wall-clock times in Asia/Jakarta (UTC+7):

	now := timepolicy.Now()
	stored := timepolicy.Format(now) // "2025-03-01 14:05:00"

# Parsing

Parse accepts the storage layout, the form layout ("2006-01-02 15:04"),
ISO variants with or without a zone, and bare dates:

	end, ok := timepolicy.Parse("2025-03-01 18:00")

# Window States

	OPEN     now < end
	CLOSED   end <= now <= end + 24h   (results visible, voting rejected)
	EXPIRED  now > end + 24h           (purged on next access)

Evaluate combines parsing and state derivation. Unparseable end times are
treated as OPEN.
*/
package timepolicy
