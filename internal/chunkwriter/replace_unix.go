//go:build !windows

package chunkwriter

import "os"

func osReplace(tmpPath, dest string) error {
	return os.Rename(tmpPath, dest)
}

// persists the rename itself
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
