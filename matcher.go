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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/entregahq/entrega/model"
)

// ExistsRecord reports whether the actas sheet already holds a record with
// the given (name, date) identity key. Name comparison is trimmed and
// lowercased; the date is compared in dd/mm/yyyy form. The scan starts at
// the first data row and is O(rows) per call, which is fine at workbook
// scale.
func (e *Entrega) ExistsRecord(sheet, name, date string) (bool, error) {
	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return false, err
	}

	wantName := model.NormalizeName(name)
	wantDate := strings.TrimSpace(date)

	for i := model.FirstDataRow - 1; i < len(rows); i++ {
		rowDate, ok := model.ParseDate(cellAt(rows, i, model.ColFecha))
		if !ok {
			continue
		}
		rowName := model.NormalizeName(cellAt(rows, i, model.ColUsuario))
		if model.FormatDate(rowDate) == wantDate && rowName == wantName {
			return true, nil
		}
	}
	return false, nil
}

// MatchFile finds the first filename in a prebuilt name→URL index that
// contains the required pattern as an exact substring. Filenames are
// visited in sorted order so repeated runs pick the same winner.
func MatchFile(index map[string]string, pattern string) (string, bool) {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.Contains(name, pattern) {
			return index[name], true
		}
	}
	return "", false
}

// logClosestFile records the nearest filename by Levenshtein distance when
// an exact pattern match failed. Diagnostic only; nothing is ever linked
// from here.
func logClosestFile(index map[string]string, pattern string) {
	best := ""
	bestDist := -1
	for name := range index {
		d := levenshtein.DistanceForStrings([]rune(pattern), []rune(name), levenshtein.DefaultOptions)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		logrus.Debugf("sin coincidencia exacta para %q; el archivo más parecido es %q (distancia %d)", pattern, best, bestDist)
	}
}
