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

// Package store defines the row-store abstraction the pipeline reads and
// writes: a workbook of named sheets addressed by (sheet, row, column).
// The production implementation is an xlsx workbook; tests inject fakes.
package store

import "errors"

// ErrSheetNotFound is returned when a required sheet is absent from the
// workbook. Callers treat it as a configuration failure and abort the
// whole run.
var ErrSheetNotFound = errors.New("sheet not found")

// RowStore is the injected repository interface over the tracking
// workbook. Rows and columns are 1-based, matching spreadsheet addressing;
// ReadRows returns the used range as a zero-based matrix of cell strings.
type RowStore interface {
	// ReadRows returns every used row of the sheet as a string matrix.
	ReadRows(sheet string) ([][]string, error)
	// ReadCell returns the display value of a single cell, "" when empty.
	ReadCell(sheet string, row, col int) (string, error)
	// WriteCell sets a single cell value.
	WriteCell(sheet string, row, col int, value string) error
	// WriteLink sets a cell to a hyperlink with the given label.
	WriteLink(sheet string, row, col int, url, label string) error
	// ReadLink returns the hyperlink target of a cell, "" when unlinked.
	ReadLink(sheet string, row, col int) (string, error)
	// ClearCell empties a single cell.
	ClearCell(sheet string, row, col int) error
	// ClearRange empties every cell in the inclusive rectangle.
	ClearRange(sheet string, startRow, startCol, endRow, endCol int) error
	// AppendRow writes values into the first free row and returns its index.
	AppendRow(sheet string, values []string) (int, error)
	// LastRow returns the last used 1-based row index, 0 for an empty sheet.
	LastRow(sheet string) (int, error)
	// Flush persists pending writes to the backing workbook.
	Flush() error
}
