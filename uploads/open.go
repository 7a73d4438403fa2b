// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"context"
	"strings"

	"github.com/danielhkuo/votio/cliparse"
)

// Open returns the GCS store when an upload bucket is configured and the
// disk store otherwise.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	if strings.HasPrefix(cfg.UploadBucket, gcsPrefix) {
		return NewGCSStore(ctx, cfg.UploadBucket, cfg.GCSCredsFile)
	}
	return NewDiskStore(cfg.UploadDir)
}
