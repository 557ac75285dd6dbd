// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"io"
	"io/fs"
	"time"
)

// MockFS provides a mock implementation of the fs.FS interface.
type MockFS struct {
	// OpenFunc allows for customizing the behavior of the Open method.
	OpenFunc func(name string) (fs.File, error)
}

// Open calls the OpenFunc field of the MockFS struct.
func (m *MockFS) Open(name string) (fs.File, error) {
	return m.OpenFunc(name)
}

// NewFileFS returns a MockFS serving a single file with the given content.
// Opening any other name fails with [fs.ErrNotExist].
func NewFileFS(name string, content []byte) *MockFS {
	return &MockFS{
		OpenFunc: func(n string) (fs.File, error) {
			if n != name {
				return nil, &fs.PathError{Op: "open", Path: n, Err: fs.ErrNotExist}
			}
			return &MockFile{Name: name, Content: content}, nil
		},
	}
}

// MockFile is a mock implementation of the fs.File interface.
type MockFile struct {
	// Name is reported by Stat.
	Name string
	// Content simulates the content of the file. Read operations will return data from this slice.
	Content []byte
	// ReadErr, if set, is returned by Read instead of the content.
	ReadErr error
	// readPos tracks the current position in Content.
	readPos int

	// CloseFunc is an optional function that simulates closing the file.
	CloseFunc func() error
}

// Read copies the remaining content into b and returns io.EOF once all content was read.
func (mf *MockFile) Read(b []byte) (int, error) {
	if mf.ReadErr != nil {
		return 0, mf.ReadErr
	}
	if mf.readPos >= len(mf.Content) {
		return 0, io.EOF
	}
	n := copy(b, mf.Content[mf.readPos:])
	mf.readPos += n
	return n, nil
}

// Close simulates closing the file.
func (mf *MockFile) Close() error {
	if mf.CloseFunc != nil {
		return mf.CloseFunc()
	}
	return nil
}

// Stat returns the file's name and size.
func (mf *MockFile) Stat() (fs.FileInfo, error) {
	return fileInfo{name: mf.Name, size: int64(len(mf.Content))}, nil
}

type fileInfo struct {
	name string
	size int64
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return false }
func (fi fileInfo) Sys() any           { return nil }
