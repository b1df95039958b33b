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

package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// trashDirName is the per-folder trash location. Listing skips it.
const trashDirName = ".trash"

// Local implements Store over a plain directory tree. Folder IDs are
// directory paths and file IDs are file paths.
type Local struct{}

// NewLocal returns a filesystem-backed Store.
func NewLocal() *Local {
	return &Local{}
}

func (l *Local) List(ctx context.Context, folderID string) ([]File, error) {
	entries, err := os.ReadDir(folderID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFolderNotFound, "%s", folderID)
		}
		return nil, errors.Wrapf(err, "listing folder %s", folderID)
	}
	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, l.describe(filepath.Join(folderID, entry.Name())))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (l *Local) Get(ctx context.Context, fileID string) (File, error) {
	info, err := os.Stat(fileID)
	if err != nil || info.IsDir() {
		return File{}, errors.Wrapf(ErrFileNotFound, "%s", fileID)
	}
	return l.describe(fileID), nil
}

func (l *Local) ReadBlob(ctx context.Context, fileID string) ([]byte, error) {
	data, err := os.ReadFile(fileID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", fileID)
		}
		return nil, errors.Wrapf(err, "reading %s", fileID)
	}
	return data, nil
}

func (l *Local) CreateFromBlob(ctx context.Context, folderID, name string, data []byte) (File, error) {
	if info, err := os.Stat(folderID); err != nil || !info.IsDir() {
		return File{}, errors.Wrapf(ErrFolderNotFound, "%s", folderID)
	}
	path := filepath.Join(folderID, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return File{}, errors.Wrapf(err, "writing %s", path)
	}
	return l.describe(path), nil
}

// Trash moves the file into its folder's trash directory. A name clash in
// the trash gets a timestamp suffix so nothing is overwritten.
func (l *Local) Trash(ctx context.Context, fileID string) error {
	if _, err := os.Stat(fileID); err != nil {
		return errors.Wrapf(ErrFileNotFound, "%s", fileID)
	}
	trashDir := filepath.Join(filepath.Dir(fileID), trashDirName)
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating trash dir %s", trashDir)
	}
	target := filepath.Join(trashDir, filepath.Base(fileID))
	if _, err := os.Stat(target); err == nil {
		target = fmt.Sprintf("%s.%d", target, time.Now().UnixNano())
	}
	return errors.Wrapf(os.Rename(fileID, target), "trashing %s", fileID)
}

func (l *Local) describe(path string) File {
	name := filepath.Base(path)
	return File{
		ID:       path,
		Name:     name,
		URL:      "file://" + filepath.ToSlash(path),
		MIMEType: detectMIME(path),
	}
}
