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

package entrega

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/entregahq/entrega/docgen"
	"github.com/entregahq/entrega/filestore"
	"github.com/entregahq/entrega/invgate"
	"github.com/entregahq/entrega/store"
)

// mockRowStore is an in-memory RowStore over per-sheet cell grids.
type mockRowStore struct {
	sheets map[string][][]string
	links  map[string]string
}

func newMockRowStore() *mockRowStore {
	return &mockRowStore{sheets: make(map[string][][]string), links: make(map[string]string)}
}

func (m *mockRowStore) grid(sheet string) ([][]string, error) {
	g, ok := m.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheet, store.ErrSheetNotFound)
	}
	return g, nil
}

// setCell grows the grid as needed; row and col are 1-based.
func (m *mockRowStore) setCell(sheet string, row, col int, value string) {
	g := m.sheets[sheet]
	for len(g) < row {
		g = append(g, nil)
	}
	for len(g[row-1]) < col {
		g[row-1] = append(g[row-1], "")
	}
	g[row-1][col-1] = value
	m.sheets[sheet] = g
}

func (m *mockRowStore) ReadRows(sheet string) ([][]string, error) {
	return m.grid(sheet)
}

func (m *mockRowStore) ReadCell(sheet string, row, col int) (string, error) {
	g, err := m.grid(sheet)
	if err != nil {
		return "", err
	}
	if row > len(g) || col > len(g[row-1]) {
		return "", nil
	}
	return g[row-1][col-1], nil
}

func (m *mockRowStore) WriteCell(sheet string, row, col int, value string) error {
	if _, err := m.grid(sheet); err != nil {
		return err
	}
	m.setCell(sheet, row, col, value)
	return nil
}

func (m *mockRowStore) WriteLink(sheet string, row, col int, url, label string) error {
	if err := m.WriteCell(sheet, row, col, label); err != nil {
		return err
	}
	m.links[fmt.Sprintf("%s!%d:%d", sheet, row, col)] = url
	return nil
}

func (m *mockRowStore) ReadLink(sheet string, row, col int) (string, error) {
	if _, err := m.grid(sheet); err != nil {
		return "", err
	}
	return m.links[fmt.Sprintf("%s!%d:%d", sheet, row, col)], nil
}

func (m *mockRowStore) ClearCell(sheet string, row, col int) error {
	return m.WriteCell(sheet, row, col, "")
}

func (m *mockRowStore) ClearRange(sheet string, startRow, startCol, endRow, endCol int) error {
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			if err := m.ClearCell(sheet, r, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *mockRowStore) AppendRow(sheet string, values []string) (int, error) {
	last, err := m.LastRow(sheet)
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		m.setCell(sheet, last+1, i+1, v)
	}
	return last + 1, nil
}

func (m *mockRowStore) LastRow(sheet string) (int, error) {
	g, err := m.grid(sheet)
	if err != nil {
		return 0, err
	}
	return len(g), nil
}

func (m *mockRowStore) Flush() error { return nil }

// mockFileStore is an in-memory filestore keyed by folder ID.
type mockFileStore struct {
	folders map[string][]filestore.File
	blobs   map[string][]byte
	trashed []string
	nextID  int
}

func newMockFileStore(folders ...string) *mockFileStore {
	m := &mockFileStore{folders: make(map[string][]filestore.File), blobs: make(map[string][]byte)}
	for _, f := range folders {
		m.folders[f] = nil
	}
	return m
}

func (m *mockFileStore) add(folderID, name, mimeType string, data []byte) filestore.File {
	m.nextID++
	id := fmt.Sprintf("%s/%d-%s", folderID, m.nextID, name)
	f := filestore.File{
		ID:       id,
		Name:     name,
		URL:      "file://" + id,
		MIMEType: mimeType,
	}
	m.folders[folderID] = append(m.folders[folderID], f)
	m.blobs[f.ID] = data
	return f
}

func (m *mockFileStore) List(_ context.Context, folderID string) ([]filestore.File, error) {
	files, ok := m.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %q: %w", folderID, filestore.ErrFolderNotFound)
	}
	out := make([]filestore.File, len(files))
	copy(out, files)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockFileStore) Get(_ context.Context, fileID string) (filestore.File, error) {
	for _, files := range m.folders {
		for _, f := range files {
			if f.ID == fileID {
				return f, nil
			}
		}
	}
	return filestore.File{}, fmt.Errorf("file %q: %w", fileID, filestore.ErrFileNotFound)
}

func (m *mockFileStore) ReadBlob(_ context.Context, fileID string) ([]byte, error) {
	data, ok := m.blobs[fileID]
	if !ok {
		return nil, fmt.Errorf("file %q: %w", fileID, filestore.ErrFileNotFound)
	}
	return data, nil
}

func (m *mockFileStore) CreateFromBlob(_ context.Context, folderID, name string, data []byte) (filestore.File, error) {
	if _, ok := m.folders[folderID]; !ok {
		return filestore.File{}, fmt.Errorf("folder %q: %w", folderID, filestore.ErrFolderNotFound)
	}
	return m.add(folderID, name, "application/octet-stream", data), nil
}

func (m *mockFileStore) Trash(_ context.Context, fileID string) error {
	for folderID, files := range m.folders {
		for i, f := range files {
			if f.ID == fileID {
				m.folders[folderID] = append(files[:i:i], files[i+1:]...)
				m.trashed = append(m.trashed, fileID)
				return nil
			}
		}
	}
	return fmt.Errorf("file %q: %w", fileID, filestore.ErrFileNotFound)
}

// mockRenderer records render calls and can be told to fail for a person.
type mockRenderer struct {
	rendered []docgen.ActaFields
	failFor  string
}

func (m *mockRenderer) RenderActa(_ context.Context, fields docgen.ActaFields) ([]byte, error) {
	if m.failFor != "" && fields.NombreApellido == m.failFor {
		return nil, fmt.Errorf("render failed for %s", fields.NombreApellido)
	}
	m.rendered = append(m.rendered, fields)
	return []byte("%PDF-mock " + fields.NombreApellido), nil
}

func (m *mockRenderer) RenderImagePDF(_ context.Context, _ []byte, mimeType string) ([]byte, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("unsupported image type %s", mimeType)
	}
	return []byte("%PDF-mock image"), nil
}

// mockMailer captures sent messages.
type mockMailer struct {
	to, subject, body string
	sends             int
	err               error
}

func (m *mockMailer) SendHTML(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.body = to, subject, htmlBody
	m.sends++
	return nil
}

// mockTickets serves a fixed view and incident set.
type mockTickets struct {
	ids       []int
	incidents map[string]invgate.Incident
	err       error
}

func (m *mockTickets) ViewRequestIDs(_ context.Context, _ int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ids, nil
}

func (m *mockTickets) IncidentsByIDs(_ context.Context, _ []int) (map[string]invgate.Incident, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.incidents, nil
}

func (m *mockTickets) TicketURL(id string) string {
	return "https://helpdesk.example.com/requests/show/index/id/" + id
}

// mockOCR maps blob contents to canned text.
type mockOCR struct {
	texts map[string]string
	err   error
}

func (m *mockOCR) ExtractText(_ context.Context, image []byte, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.texts[string(image)], nil
}
