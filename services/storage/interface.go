package storage

import (
	"context"
	"io"
)

// StoredFile is an uploaded asset.
type StoredFile struct {
	PublicID string
	URL      string
}

// SlipStorage keeps payment slip images.
type SlipStorage interface {
	// UploadSlip stores image under publicID, replacing any asset already there.
	UploadSlip(ctx context.Context, publicID string, image io.Reader) (*StoredFile, error)
	// DeleteFile removes an asset by its public id.
	DeleteFile(ctx context.Context, publicID string) error
}
