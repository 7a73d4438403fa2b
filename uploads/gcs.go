// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPrefix = "gs://"

// GCSStore keeps uploads as objects in a Google Cloud Storage bucket
type GCSStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// NewGCSStore connects to the bucket named by a gs://bucket[/prefix] URL
func NewGCSStore(ctx context.Context, bucketURL, credentialsFile string) (*GCSStore, error) {
	rest, ok := strings.CutPrefix(bucketURL, gcsPrefix)
	if !ok || rest == "" {
		return nil, fmt.Errorf("gcs uploads: expected %s<bucket>, got %q", gcsPrefix, bucketURL)
	}
	bucketName, prefix, _ := strings.Cut(rest, "/")

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs uploads: failed in creating storage client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: client.Bucket(bucketName),
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *GCSStore) object(name string) *storage.ObjectHandle {
	if s.prefix != "" {
		name = path.Join(s.prefix, name)
	}
	return s.bucket.Object(name)
}

func (s *GCSStore) Save(ctx context.Context, name string, r io.Reader) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid upload name %q", name)
	}

	w := s.object(name).NewWriter(ctx)
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("gcs uploads: write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs uploads: write %s: %w", name, err)
	}
	return nil
}

func (s *GCSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, ErrNotExist
	}

	rc, err := s.object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("gcs uploads: read %s: %w", name, err)
	}
	return rc, nil
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrNotExist
	}

	err := s.object(name).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// Close releases the storage client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
