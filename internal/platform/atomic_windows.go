//go:build windows

package platform

import "os"

// WriteFileAtomic falls back to os.WriteFile; renameio does not support Windows.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
