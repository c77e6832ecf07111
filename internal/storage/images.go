package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultContentType = "application/octet-stream"

// ImageName builds a unique, collision-resistant file name that keeps the
// extension of the uploaded file: "<prefix>-<unix ms>-<random><ext>".
// A prefix or extension with anything but lower-case letters, digits and
// dashes is dropped, so the name never leaves the upload directory.
func ImageName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !safeNamePart(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	if prefix = strings.ToLower(prefix); safeNamePart(prefix) {
		name = prefix + "-" + name
	}
	return name
}

func safeNamePart(s string) bool {
	if s == "" || len(s) > 32 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// ContentTypeFor falls back to the file extension when the client did not
// send a usable content type.
func ContentTypeFor(filename, declared string) string {
	if declared != "" && declared != DefaultContentType {
		return declared
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return DefaultContentType
}

// DiskImages writes uploads into a local directory that is also served
// statically under urlPrefix.
type DiskImages struct {
	dir       string
	urlPrefix string
}

func NewDiskImages(dir, urlPrefix string) (*DiskImages, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskImages{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (d *DiskImages) Save(_ context.Context, up Upload) (string, error) {
	name := ImageName(up.Prefix, up.Filename)

	f, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, up.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return path.Join(d.urlPrefix, name), nil
}

func (d *DiskImages) Open(_ context.Context, id string) (*Blob, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(d.dir, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &Blob{
		ContentType: ContentTypeFor(id, ""),
		Size:        info.Size(),
		Body:        f,
	}, nil
}
