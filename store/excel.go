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

package store

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ExcelStore implements RowStore over an xlsx workbook on disk.
type ExcelStore struct {
	file *excelize.File
	path string
}

// OpenExcel opens the workbook at the given path.
func OpenExcel(path string) (*ExcelStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening workbook %s", path)
	}
	return &ExcelStore{file: f, path: path}, nil
}

// Close releases the underlying workbook handle without saving.
func (s *ExcelStore) Close() error {
	return s.file.Close()
}

func (s *ExcelStore) checkSheet(sheet string) error {
	idx, err := s.file.GetSheetIndex(sheet)
	if err != nil {
		return errors.Wrapf(err, "looking up sheet %q", sheet)
	}
	if idx < 0 {
		return errors.Wrapf(ErrSheetNotFound, "sheet %q", sheet)
	}
	return nil
}

func (s *ExcelStore) ReadRows(sheet string) ([][]string, error) {
	if err := s.checkSheet(sheet); err != nil {
		return nil, err
	}
	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rows of %q", sheet)
	}
	return rows, nil
}

func (s *ExcelStore) ReadCell(sheet string, row, col int) (string, error) {
	if err := s.checkSheet(sheet); err != nil {
		return "", err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return s.file.GetCellValue(sheet, cell)
}

func (s *ExcelStore) WriteCell(sheet string, row, col int, value string) error {
	if err := s.checkSheet(sheet); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.file.SetCellStr(sheet, cell, value)
}

func (s *ExcelStore) WriteLink(sheet string, row, col int, url, label string) error {
	if err := s.checkSheet(sheet); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := s.file.SetCellStr(sheet, cell, label); err != nil {
		return err
	}
	return s.file.SetCellHyperLink(sheet, cell, url, "External")
}

func (s *ExcelStore) ReadLink(sheet string, row, col int) (string, error) {
	if err := s.checkSheet(sheet); err != nil {
		return "", err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	linked, target, err := s.file.GetCellHyperLink(sheet, cell)
	if err != nil {
		return "", errors.Wrapf(err, "reading hyperlink of %s!%s", sheet, cell)
	}
	if !linked {
		return "", nil
	}
	return target, nil
}

func (s *ExcelStore) ClearCell(sheet string, row, col int) error {
	return s.WriteCell(sheet, row, col, "")
}

func (s *ExcelStore) ClearRange(sheet string, startRow, startCol, endRow, endCol int) error {
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			if err := s.ClearCell(sheet, r, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ExcelStore) AppendRow(sheet string, values []string) (int, error) {
	last, err := s.LastRow(sheet)
	if err != nil {
		return 0, err
	}
	row := last + 1
	for i, v := range values {
		if err := s.WriteCell(sheet, row, i+1, v); err != nil {
			return 0, err
		}
	}
	return row, nil
}

func (s *ExcelStore) LastRow(sheet string) (int, error) {
	rows, err := s.ReadRows(sheet)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Flush writes the workbook back to the path it was opened from.
func (s *ExcelStore) Flush() error {
	return errors.Wrapf(s.file.Save(), "saving workbook %s", s.path)
}
