// Package fshelper wraps filesystem primitives behind a small set of named
// operations. A Helper works on any afero.Fs; the package-level functions use
// the real operating system filesystem.
package fshelper

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrInvalidArgument is returned when a path cannot be used the way the
// caller asked, e.g. a directory that cannot be opened.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultDirMode is used when directories are created on the caller's behalf.
const DefaultDirMode os.FileMode = 0o775

const defaultFileMode os.FileMode = 0o644

// Helper performs file operations against a single filesystem.
type Helper struct {
	fs afero.Fs
}

// New returns a Helper bound to fs.
func New(fsys afero.Fs) *Helper {
	return &Helper{fs: fsys}
}

// OS returns a Helper bound to the operating system filesystem.
func OS() *Helper {
	return New(afero.NewOsFs())
}

// Fs exposes the underlying filesystem.
func (h *Helper) Fs() afero.Fs {
	return h.fs
}

// Exists reports whether a file or directory exists at path.
func (h *Helper) Exists(path string) bool {
	ok, err := afero.Exists(h.fs, path)
	return err == nil && ok
}

// Get reads the whole file.
func (h *Helper) Get(path string) ([]byte, error) {
	return afero.ReadFile(h.fs, path)
}

// Put replaces the file contents and returns the number of bytes written.
// With lock set the write happens under an exclusive advisory lock when the
// platform supports it.
func (h *Helper) Put(path string, contents []byte, lock bool) (int, error) {
	flag := os.O_WRONLY | os.O_CREATE
	if !lock {
		flag |= os.O_TRUNC
	}
	f, err := h.fs.OpenFile(path, flag, defaultFileMode)
	if err != nil {
		return 0, err
	}

	if lock {
		unlock, err := lockExclusive(f)
		if err != nil {
			f.Close()
			return 0, fmt.Errorf("lock %s: %w", path, err)
		}
		// Truncate only once the lock is held so readers never see a partial file.
		if err := f.Truncate(0); err != nil {
			unlock()
			f.Close()
			return 0, err
		}
		n, err := f.Write(contents)
		unlock()
		return closeAfterWrite(f, n, err)
	}

	n, err := f.Write(contents)
	return closeAfterWrite(f, n, err)
}

// Append adds data to the end of the file, creating it when missing.
func (h *Helper) Append(path string, data []byte) (int, error) {
	f, err := h.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultFileMode)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(data)
	return closeAfterWrite(f, n, err)
}

// closeAfterWrite closes f and reports the close error when the write succeeded.
func closeAfterWrite(f afero.File, n int, werr error) (int, error) {
	cerr := f.Close()
	if werr != nil {
		return n, werr
	}
	return n, cerr
}

// Delete removes the file. It returns false when nothing was removed,
// including when path is a directory.
func (h *Helper) Delete(path string) bool {
	info, err := h.fs.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return h.fs.Remove(path) == nil
}

// Move renames path to target.
func (h *Helper) Move(path, target string) error {
	return h.fs.Rename(path, target)
}

// Copy writes the contents of path to target, keeping the permission bits.
func (h *Helper) Copy(path, target string) error {
	src, err := h.fs.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: %w: is a directory", path, ErrInvalidArgument)
	}

	dst, err := h.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// Type returns the file type name: file, dir, link, fifo, char, block,
// socket or unknown.
func (h *Helper) Type(path string) (string, error) {
	info, err := h.lstat(path)
	if err != nil {
		return "", err
	}
	return typeName(info.Mode()), nil
}

// Size returns the file size in bytes.
func (h *Helper) Size(path string) (int64, error) {
	info, err := h.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// LastModified returns the modification time of the file.
func (h *Helper) LastModified(path string) (time.Time, error) {
	info, err := h.fs.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Files lists the regular files directly inside directory, sorted by name.
// Hidden entries are skipped. An unreadable directory yields an empty list.
func (h *Helper) Files(directory string) []string {
	matches, err := afero.Glob(h.fs, filepath.Join(directory, "*"))
	if err != nil {
		return []string{}
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), ".") {
			continue
		}
		if t, err := h.Type(m); err == nil && t == "file" {
			files = append(files, m)
		}
	}
	return files
}

// CleanDirectory empties directory by removing and recreating it.
func (h *Helper) CleanDirectory(directory string) error {
	if err := h.RemoveDirectory(directory); err != nil {
		return err
	}
	return h.CreateDirectory(directory, DefaultDirMode)
}

// IsEmptyDirectory reports whether directory has no entries. A path that
// cannot be opened as a directory yields ErrInvalidArgument.
func (h *Helper) IsEmptyDirectory(directory string) (bool, error) {
	directory = NormalizePath(directory)
	d, err := h.fs.Open(directory)
	if err != nil {
		return false, fmt.Errorf("unable to open directory: %s: %w", directory, ErrInvalidArgument)
	}
	defer d.Close()

	names, err := d.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("unable to open directory: %s: %w", directory, ErrInvalidArgument)
	}
	return len(names) == 0, nil
}

// CreateDirectory creates directory and any missing parents.
func (h *Helper) CreateDirectory(directory string, perm os.FileMode) error {
	return h.fs.MkdirAll(NormalizePath(directory), perm)
}

// RemoveDirectory removes directory and everything below it. A missing
// directory is not an error.
func (h *Helper) RemoveDirectory(directory string) error {
	return h.fs.RemoveAll(NormalizePath(directory))
}

func (h *Helper) lstat(path string) (fs.FileInfo, error) {
	if l, ok := h.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return h.fs.Stat(path)
}

// BaseName returns the last path element without its extension.
func BaseName(path string) string {
	base := filepath.Base(NormalizePath(path))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extension returns the lower-cased extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// NormalizePath converts both slash styles to the platform separator and
// cleans the result.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\`, "/")
	return filepath.Clean(filepath.FromSlash(path))
}

func typeName(mode fs.FileMode) string {
	switch {
	case mode.IsRegular():
		return "file"
	case mode.IsDir():
		return "dir"
	case mode&fs.ModeSymlink != 0:
		return "link"
	case mode&fs.ModeNamedPipe != 0:
		return "fifo"
	case mode&fs.ModeCharDevice != 0:
		return "char"
	case mode&fs.ModeDevice != 0:
		return "block"
	case mode&fs.ModeSocket != 0:
		return "socket"
	default:
		return "unknown"
	}
}
