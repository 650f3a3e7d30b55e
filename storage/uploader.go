// Package storage persists team flag images in an object store.
package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored flag object. Location is the public URL
// written back onto the team.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores flag images under stable per-team keys and removes
// them when the owning team is deleted.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error
}
