// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package uploads stores candidate photos and CVs.

# Naming

Every stored file gets a deterministic, sanitized name:

	uploads.StoredName(electionID, index, uploads.KindPhoto, "me.jpg")
	// "7_0_photo_me.jpg"

Only whitelisted extensions are accepted (Allowed). Files with other
extensions are skipped by the caller rather than rejected.

# Backends

  - DiskStore: one flat directory (UPLOAD_DIR)
  - GCSStore: a Google Cloud Storage bucket (UPLOAD_BUCKET=gs://bucket/prefix)

Open picks the backend from configuration.
*/
package uploads
