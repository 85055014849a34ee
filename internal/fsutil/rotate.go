// Package fsutil provides small filesystem helpers shared by adapters.
package fsutil

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/zerr"
)

// Rotate moves the file at path out of the way by renaming it to
// path+suffix, replacing any older backup with that name. A missing
// path is not an error; Rotate reports whether a file was moved.
func Rotate(path, suffix string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, "failed to stat file for rotation")
	}

	backup := path + suffix
	if _, err := os.Stat(backup); err == nil {
		if err := os.Remove(backup); err != nil {
			return false, zerr.Wrap(err, "failed to replace old backup")
		}
	}

	if err := os.Rename(path, backup); err != nil {
		return false, zerr.Wrap(err, "failed to rotate file to backup")
	}
	return true, nil
}
