// Package safeio provides hardened reading of user-supplied files.
package safeio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegularFile is returned when attempting to read a file that is
// not a regular file. This includes symlinks, FIFOs, devices, sockets,
// and directories.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned when a file exceeds the caller's size limit.
var ErrTooLarge = errors.New("file too large")

// SanitizePathError removes the path from os.PathError so error messages
// do not expose file system paths to users.
func SanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// OpenRegular opens a file and verifies it is a regular file.
// It lstats the path first to reject symlinks, then stats the opened
// descriptor to catch the file being replaced in between. A small TOCTOU
// window remains; Go's standard library does not expose O_NOFOLLOW in a
// cross-platform way.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// ReadLimited reads a regular file of at most max bytes. Oversized files
// fail with ErrTooLarge rather than being truncated, and the read itself
// is limit-bounded so a file growing between stat and read cannot bypass
// the cap.
func ReadLimited(path string, max int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, SanitizePathError(err)
	}
	defer f.Close()

	if info.Size() > max {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), max)
	}

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, SanitizePathError(err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), max)
	}
	return data, nil
}
