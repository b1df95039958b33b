/*
Copyright 2024 Entrega Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package filestore models the document storage collaborator: folders of
// files with trash-not-delete semantics. The production implementation is
// a local directory tree.
package filestore

import (
	"context"
	"errors"
)

// ErrFolderNotFound is returned when a configured folder does not exist.
// Callers treat it as a configuration failure and abort the run.
var ErrFolderNotFound = errors.New("folder not found")

// ErrFileNotFound is returned when a file ID resolves to nothing.
var ErrFileNotFound = errors.New("file not found")

// File describes one stored file.
type File struct {
	ID       string
	Name     string
	URL      string
	MIMEType string
}

// Store is the file storage interface the pipeline consumes. Files are
// never hard-deleted: Trash moves them out of sight but keeps the bytes.
type Store interface {
	// List enumerates the files directly inside a folder.
	List(ctx context.Context, folderID string) ([]File, error)
	// Get resolves a file ID to its metadata.
	Get(ctx context.Context, fileID string) (File, error)
	// ReadBlob returns the file contents.
	ReadBlob(ctx context.Context, fileID string) ([]byte, error)
	// CreateFromBlob files a new blob under the given name and returns it.
	CreateFromBlob(ctx context.Context, folderID, name string, data []byte) (File, error)
	// Trash moves a file to the folder's trash.
	Trash(ctx context.Context, fileID string) error
}
