//go:build !unix

package fshelper

import "github.com/spf13/afero"

func lockExclusive(afero.File) (func(), error) {
	return func() {}, nil
}
