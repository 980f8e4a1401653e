// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package param

import (
	"errors"
	"io/fs"
	"os"

	"github.com/z5labs/storefront/apierr"
)

// File is a validated reference to a local file destined for multipart upload.
// Only the file metadata is checked at construction; contents are read when the
// request is sent.
type File struct {
	path string
}

// NewFile validates path and returns a [File] for it. It fails with an
// [apierr.KindInvalidFile] error if path is empty, does not exist, is not a
// regular file or cannot be opened for reading.
func NewFile(path string) (File, error) {
	if path == "" {
		return File{}, apierr.InvalidFile(path, "path is empty", nil)
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, apierr.InvalidFile(path, "file does not exist", err)
	}
	if err != nil {
		return File{}, apierr.InvalidFile(path, "unable to stat file", err)
	}
	if !info.Mode().IsRegular() {
		return File{}, apierr.InvalidFile(path, "not a regular file", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return File{}, apierr.InvalidFile(path, "file is not readable", err)
	}
	_ = f.Close()

	return File{path: path}, nil
}

// Path returns the path the file was constructed with.
func (f File) Path() string {
	return f.path
}
