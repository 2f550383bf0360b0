package fshelper

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func memHelper(t *testing.T) *Helper {
	t.Helper()
	h := New(afero.NewMemMapFs())
	if err := h.CreateDirectory("/data", DefaultDirMode); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	return h
}

func TestHelper_ExistsAfterPut(t *testing.T) {
	h := memHelper(t)
	if h.Exists("/data/a.txt") {
		t.Fatalf("expected file to be missing")
	}
	if _, err := h.Put("/data/a.txt", []byte("x"), false); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !h.Exists("/data/a.txt") {
		t.Fatalf("expected file to exist")
	}
	if !h.Exists("/data") {
		t.Fatalf("expected directory to exist")
	}
}

func TestHelper_PutGetRoundTrip(t *testing.T) {
	h := memHelper(t)
	want := []byte("hello\x00world\n")
	n, err := h.Put("/data/a.bin", want, false)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != len(want) {
		t.Fatalf("expected %d bytes written, got %d", len(want), n)
	}
	got, err := h.Get("/data/a.bin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestHelper_PutTruncates(t *testing.T) {
	h := memHelper(t)
	for _, lock := range []bool{false, true} {
		if _, err := h.Put("/data/a.txt", []byte("a long first value"), lock); err != nil {
			t.Fatalf("put: %v", err)
		}
		if _, err := h.Put("/data/a.txt", []byte("short"), lock); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, _ := h.Get("/data/a.txt")
		if string(got) != "short" {
			t.Fatalf("lock=%v: expected truncated content, got %q", lock, got)
		}
	}
}

func TestHelper_AppendConcatenatesInOrder(t *testing.T) {
	h := memHelper(t)
	if _, err := h.Append("/data/log.txt", []byte("first;")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := h.Append("/data/log.txt", []byte("second")); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := h.Get("/data/log.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "first;second" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestHelper_Delete(t *testing.T) {
	h := memHelper(t)
	if h.Delete("/data/missing.txt") {
		t.Fatalf("expected false for missing file")
	}
	_, _ = h.Put("/data/a.txt", []byte("x"), false)
	if !h.Delete("/data/a.txt") {
		t.Fatalf("expected delete to succeed")
	}
	if h.Exists("/data/a.txt") {
		t.Fatalf("file still exists after delete")
	}

	if err := h.CreateDirectory("/data/empty", DefaultDirMode); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if h.Delete("/data/empty") {
		t.Fatalf("expected false for a directory")
	}
	if !h.Exists("/data/empty") {
		t.Fatalf("directory removed by delete")
	}
}

var errClose = errors.New("close failed")

type closeErrFs struct{ afero.Fs }

func (fs closeErrFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := fs.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return closeErrFile{f}, nil
}

type closeErrFile struct{ afero.File }

func (f closeErrFile) Close() error {
	f.File.Close()
	return errClose
}

func TestHelper_WriteReportsCloseError(t *testing.T) {
	h := New(closeErrFs{afero.NewMemMapFs()})

	if _, err := h.Put("/a.txt", []byte("x"), false); !errors.Is(err, errClose) {
		t.Fatalf("put: expected close error, got %v", err)
	}
	if _, err := h.Put("/a.txt", []byte("x"), true); !errors.Is(err, errClose) {
		t.Fatalf("locked put: expected close error, got %v", err)
	}
	if _, err := h.Append("/a.txt", []byte("y")); !errors.Is(err, errClose) {
		t.Fatalf("append: expected close error, got %v", err)
	}
}

func TestHelper_MoveAndCopy(t *testing.T) {
	h := memHelper(t)
	_, _ = h.Put("/data/a.txt", []byte("payload"), false)

	if err := h.Copy("/data/a.txt", "/data/b.txt"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if err := h.Move("/data/a.txt", "/data/c.txt"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if h.Exists("/data/a.txt") {
		t.Fatalf("source still present after move")
	}
	for _, p := range []string{"/data/b.txt", "/data/c.txt"} {
		got, err := h.Get(p)
		if err != nil || string(got) != "payload" {
			t.Fatalf("%s: got %q err=%v", p, got, err)
		}
	}
	if err := h.Copy("/data", "/data/d"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument copying a directory, got %v", err)
	}
}

func TestHelper_Metadata(t *testing.T) {
	h := memHelper(t)
	_, _ = h.Put("/data/a.txt", []byte("12345"), false)

	if typ, err := h.Type("/data/a.txt"); err != nil || typ != "file" {
		t.Fatalf("expected file type, got %q err=%v", typ, err)
	}
	if typ, err := h.Type("/data"); err != nil || typ != "dir" {
		t.Fatalf("expected dir type, got %q err=%v", typ, err)
	}
	if size, err := h.Size("/data/a.txt"); err != nil || size != 5 {
		t.Fatalf("expected size 5, got %d err=%v", size, err)
	}
	if mt, err := h.LastModified("/data/a.txt"); err != nil || mt.IsZero() {
		t.Fatalf("expected modification time, got %v err=%v", mt, err)
	}
	if _, err := h.Size("/data/missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHelper_Files(t *testing.T) {
	h := memHelper(t)
	_, _ = h.Put("/data/b.txt", []byte("b"), false)
	_, _ = h.Put("/data/a.txt", []byte("a"), false)
	_, _ = h.Put("/data/.hidden", []byte("h"), false)
	_ = h.CreateDirectory("/data/sub", DefaultDirMode)

	got := h.Files("/data")
	want := []string{filepath.Join("/data", "a.txt"), filepath.Join("/data", "b.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if files := h.Files("/nowhere"); len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestHelper_CleanDirectory(t *testing.T) {
	h := memHelper(t)
	_, _ = h.Put("/data/a.txt", []byte("a"), false)
	_ = h.CreateDirectory("/data/sub/deeper", DefaultDirMode)
	_, _ = h.Put("/data/sub/deeper/b.txt", []byte("b"), false)

	if err := h.CleanDirectory("/data"); err != nil {
		t.Fatalf("clean: %v", err)
	}
	empty, err := h.IsEmptyDirectory("/data")
	if err != nil {
		t.Fatalf("is empty: %v", err)
	}
	if !empty {
		t.Fatalf("expected directory to be empty after clean")
	}
}

func TestHelper_IsEmptyDirectory(t *testing.T) {
	h := memHelper(t)
	empty, err := h.IsEmptyDirectory("/data")
	if err != nil || !empty {
		t.Fatalf("expected empty directory, got %v err=%v", empty, err)
	}

	_, _ = h.Put("/data/a.txt", []byte("a"), false)
	empty, err = h.IsEmptyDirectory("/data/")
	if err != nil || empty {
		t.Fatalf("expected non-empty directory, got %v err=%v", empty, err)
	}

	if _, err := h.IsEmptyDirectory("/missing"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for missing dir, got %v", err)
	}
	if _, err := h.IsEmptyDirectory("/data/a.txt"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for a file, got %v", err)
	}
}

func TestExtension_LowerCases(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":          "jpg",
		"archive.tar.GZ":     "gz",
		"/a/b/Readme.Md":     "md",
		"noext":              "",
		".bashrc":            "bashrc",
		`C:\images\LOGO.PnG`: "png",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":       "photo",
		"/a/b/report.pdf": "report",
		"archive.tar.gz":  "archive.tar",
		"名前.txt":          "名前",
		".bashrc":         "",
		"noext":           "noext",
		"":                "",
	}
	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	got := NormalizePath(`a\b//c/../d/`)
	want := filepath.Join("a", "b", "d")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPackageFunctions_OnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.txt")

	if _, err := Put(path, []byte("one"), true); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := Append(path, []byte("two")); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := Get(path)
	if err != nil || string(got) != "onetwo" {
		t.Fatalf("expected onetwo, got %q err=%v", got, err)
	}

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(path, link); err == nil {
		if typ, err := Type(link); err != nil || typ != "link" {
			t.Fatalf("expected link type, got %q err=%v", typ, err)
		}
	}

	sub := filepath.Join(dir, "sub")
	if err := CreateDirectory(sub, DefaultDirMode); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if empty, err := IsEmptyDirectory(sub); err != nil || !empty {
		t.Fatalf("expected empty dir, got %v err=%v", empty, err)
	}
	if _, err := IsEmptyDirectory(path); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for a file, got %v", err)
	}
	if !Delete(path) || Delete(path) {
		t.Fatalf("expected first delete to succeed and second to report false")
	}
	if Delete(sub) || !Exists(sub) {
		t.Fatalf("expected delete to leave the directory in place")
	}
}
