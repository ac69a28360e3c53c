package services

import (
	"io"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type BlobStore interface {
	Put(filename string, r io.Reader) error
	Remove(filename string) error
}

// Uploads gates inbound files on declared mime type and size, then
// stores them under a generated name. The client-provided filename is
// never used.
type Uploads struct {
	store        BlobStore
	allowed      map[string]string
	maxSizeBytes int64
}

func NewImageUploads(store BlobStore, maxSizeBytes int64) *Uploads {
	return &Uploads{
		store:        store,
		allowed:      map[string]string{"image/jpeg": "jpeg", "image/png": "png"},
		maxSizeBytes: maxSizeBytes,
	}
}

func NewCVUploads(store BlobStore, maxSizeBytes int64) *Uploads {
	return &Uploads{
		store:        store,
		allowed:      map[string]string{"application/pdf": "pdf"},
		maxSizeBytes: maxSizeBytes,
	}
}

// Accept validates and stores the file, returning the generated
// filename as the stable reference. The store cleans up partial writes,
// so a failed upload leaves nothing behind.
func (u *Uploads) Accept(r io.Reader, declaredType string, sizeBytes int64) (string, error) {

	if sizeBytes > u.maxSizeBytes {
		return "", models.ErrFileTooLarge
	}

	extension, ok := u.allowed[declaredType]
	if !ok {
		return "", models.ErrUnsupportedType
	}

	filename := uuid.New().String() + "." + extension

	if err := u.store.Put(filename, io.LimitReader(r, u.maxSizeBytes)); err != nil {
		return "", errors.Wrap(err, "failed to store upload")
	}

	return filename, nil
}
