package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements SlipStorage on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a slip store that keeps images under folder.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: folder}
}

// UploadSlip uploads an image and returns its public id and secure URL.
func (s *CloudinaryStorage) UploadSlip(ctx context.Context, publicID string, image io.Reader) (*StoredFile, error) {
	params := uploader.UploadParams{
		PublicID:  publicID,
		Folder:    s.folder,
		Overwrite: api.Bool(true),
	}
	result, err := s.cld.Upload.Upload(ctx, image, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload slip: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &StoredFile{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("CloudinaryStorage: delete rejected: %s", result.Error.Message)
	}
	return nil
}
