package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Disk stores blobs as files under a root directory. Filename
// uniqueness is the caller's responsibility.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Put(filename string, r io.Reader) error {
	path := filepath.Join(d.root, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		_ = os.Remove(path)
		return errors.Wrap(err, "failed to write file")
	}

	return file.Close()
}

func (d *Disk) Remove(filename string) error {
	return os.Remove(filepath.Join(d.root, filename))
}
