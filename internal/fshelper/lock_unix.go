//go:build unix

package fshelper

import (
	"os"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// lockExclusive takes an flock on OS-backed files. Other afero files are
// process-local and need no lock.
func lockExclusive(f afero.File) (func(), error) {
	osf, ok := f.(*os.File)
	if !ok {
		return func() {}, nil
	}
	fd := int(osf.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return nil, err
	}
	return func() { _ = unix.Flock(fd, unix.LOCK_UN) }, nil
}
