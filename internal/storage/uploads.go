// Package storage keeps uploaded category assets on disk.
package storage

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"category-admin/internal/fshelper"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads whose extension is not allowed.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrInvalidPath is returned for relative paths that escape the upload root.
var ErrInvalidPath = errors.New("invalid upload path")

var allowedExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "svg": {},
}

// Uploads stores files below a root directory.
type Uploads struct {
	files  *fshelper.Helper
	root   string
	prefix string
}

// NewUploads returns a store rooted at root. Files are grouped under prefix.
func NewUploads(files *fshelper.Helper, root, prefix string) *Uploads {
	return &Uploads{files: files, root: fshelper.NormalizePath(root), prefix: prefix}
}

// Root returns the directory served as the upload root.
func (u *Uploads) Root() string {
	return u.root
}

// Allowed reports whether name has an accepted extension.
func Allowed(name string) bool {
	_, ok := allowedExtensions[fshelper.Extension(name)]
	return ok
}

// Save writes data under a fresh name and returns its slash-separated path
// relative to the root.
func (u *Uploads) Save(name string, data []byte) (string, error) {
	ext := fshelper.Extension(name)
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	dir := filepath.Join(u.root, u.prefix)
	if !u.files.Exists(dir) {
		if err := u.files.CreateDirectory(dir, fshelper.DefaultDirMode); err != nil {
			return "", fmt.Errorf("create upload dir: %w", err)
		}
	}

	rel := path.Join(u.prefix, uuid.NewString()+"."+ext)
	if _, err := u.files.Put(u.abs(rel), data, true); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Open reads a stored file.
func (u *Uploads) Open(rel string) ([]byte, error) {
	if err := checkRel(rel); err != nil {
		return nil, err
	}
	return u.files.Get(u.abs(rel))
}

// Remove deletes a stored file and reports whether anything was removed.
func (u *Uploads) Remove(rel string) bool {
	if rel == "" || checkRel(rel) != nil {
		return false
	}
	return u.files.Delete(u.abs(rel))
}

// Files lists the stored files under the prefix, relative to the root.
func (u *Uploads) Files() []string {
	abs := u.files.Files(filepath.Join(u.root, u.prefix))
	out := make([]string, 0, len(abs))
	for _, f := range abs {
		out = append(out, path.Join(u.prefix, filepath.Base(f)))
	}
	return out
}

func (u *Uploads) abs(rel string) string {
	return filepath.Join(u.root, filepath.FromSlash(rel))
}

func checkRel(rel string) error {
	clean := path.Clean("/" + rel)
	if clean != "/"+strings.TrimPrefix(rel, "/") || strings.Contains(rel, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return nil
}
