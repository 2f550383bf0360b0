package fshelper

import (
	"os"
	"time"
)

var std = OS()

// Exists reports whether path exists on the OS filesystem.
func Exists(path string) bool { return std.Exists(path) }

func Get(path string) ([]byte, error) { return std.Get(path) }

func Put(path string, contents []byte, lock bool) (int, error) {
	return std.Put(path, contents, lock)
}

func Append(path string, data []byte) (int, error) { return std.Append(path, data) }

func Delete(path string) bool { return std.Delete(path) }

func Move(path, target string) error { return std.Move(path, target) }

func Copy(path, target string) error { return std.Copy(path, target) }

func Type(path string) (string, error) { return std.Type(path) }

func Size(path string) (int64, error) { return std.Size(path) }

func LastModified(path string) (time.Time, error) { return std.LastModified(path) }

func Files(directory string) []string { return std.Files(directory) }

func CleanDirectory(directory string) error { return std.CleanDirectory(directory) }

func IsEmptyDirectory(directory string) (bool, error) { return std.IsEmptyDirectory(directory) }

func CreateDirectory(directory string, perm os.FileMode) error {
	return std.CreateDirectory(directory, perm)
}

func RemoveDirectory(directory string) error { return std.RemoveDirectory(directory) }
