// AngelaMos | 2026
// store.go

package asset

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	galleryBucket = "gallery"
	companyBucket = "company"
)

// FileStore is the content side of the registry: metadata rows always refer
// to a file written through this interface.
type FileStore interface {
	SaveGallery(filename string, data []byte) error
	SaveCompany(filename string, data []byte) error

	// RemoveGallery tolerates an already-absent file so deletion can be
	// retried after a crash between file and row removal.
	RemoveGallery(filename string) error
}

type diskStore struct {
	root string
}

func NewFileStore(root string) (FileStore, error) {
	for _, bucket := range []string{galleryBucket, companyBucket} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}

	return &diskStore{root: root}, nil
}

func (s *diskStore) SaveGallery(filename string, data []byte) error {
	return s.save(galleryBucket, filename, data)
}

func (s *diskStore) SaveCompany(filename string, data []byte) error {
	return s.save(companyBucket, filename, data)
}

func (s *diskStore) RemoveGallery(filename string) error {
	path := filepath.Join(s.root, galleryBucket, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *diskStore) save(bucket, filename string, data []byte) error {
	path := filepath.Join(s.root, bucket, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
