// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrNotExist is returned by Store.Open for unknown names
var ErrNotExist = errors.New("upload does not exist")

// Kind is the role of an uploaded candidate file
type Kind string

const (
	KindPhoto Kind = "photo"
	KindCV    Kind = "cv"
)

var (
	PhotoExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}
	CVExtensions    = []string{"pdf"}
)

// Store persists candidate media by name
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// Extension returns the lower-cased text after the last dot. A name
// without a dot is returned whole, so "jpg" alone is a jpg.
func Extension(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return strings.ToLower(filename[i+1:])
	}
	return strings.ToLower(filename)
}

// Allowed reports whether filename may be attached as the given kind
func Allowed(filename string, kind Kind) bool {
	ext := Extension(filename)
	switch kind {
	case KindPhoto:
		return slices.Contains(PhotoExtensions, ext)
	case KindCV:
		return slices.Contains(CVExtensions, ext)
	}
	return false
}

// StoredName is the deterministic, sanitized name for a candidate file
func StoredName(electionID int64, index int, kind Kind, original string) string {
	return SecureFilename(strings.Join([]string{
		strconv.FormatInt(electionID, 10), strconv.Itoa(index), string(kind), original,
	}, "_"))
}

// SecureFilename reduces name to a flat ASCII file name that is safe on
// any filesystem. The result may be empty.
func SecureFilename(name string) string {
	// Fold accents, then drop whatever is still not ASCII
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	b.Reset()
	for _, r := range name {
		if r == '_' || r == '.' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// ValidName reports whether name is a plain file name with no path parts
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		path.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
