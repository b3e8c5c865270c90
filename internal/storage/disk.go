package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StoredFile describes a file written to the upload directory.
type StoredFile struct {
	StoredName   string
	OriginalName string
	MimeType     string
	SizeBytes    int64
}

// DiskStore writes uploads to a flat directory. Stored names are randomized
// to avoid collisions; no deduplication or content scanning happens here.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the upload directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the upload directory path, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save streams the multipart file to disk under a randomized name and returns
// its metadata. The caller persists the metadata row afterwards; a crash in
// between leaves an orphaned file with no tracking row.
func (s *DiskStore) Save(header *multipart.FileHeader) (*StoredFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	storedName := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &StoredFile{
		StoredName:   storedName,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		SizeBytes:    size,
	}, nil
}
