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

package model

import (
	"fmt"
	"strings"
	"time"
)

// ActionGenerate is the per-row flag value that marks an intake record as
// pending document generation. It is written by intake reconciliation and
// cleared exactly once by the generation pass.
const ActionGenerate = "Generar Acta"

// Column layout of the "Actas de entrega" sheet, zero-based as read from a
// row matrix. The sheet has a four-row header block; data begins at row 5.
const (
	ColFecha        = 0 // entry date
	ColUsuario      = 1 // person name
	ColSector       = 2
	ColTicket       = 3 // ticket hyperlink
	ColLinkFirmada  = 4 // signed-document link
	ColModeloNTB    = 5 // PC model/type
	ColAdaptadorRed = 6
	ColMouse        = 7
	ColLinkActa     = 8 // generated-document link
	ColAccion       = 9 // action flag
)

// FirstDataRow is the first 1-based row of the actas sheet that can hold an
// intake record. Rows above it are headers and are never read or written.
const FirstDataRow = 5

// Fixed cell locations of the two stock counters on the stock sheet.
const (
	StockSheetMouseRow   = 1
	StockSheetAdapterRow = 2
	StockSheetCountCol   = 2
)

// WarrantyRecord is one row of the warranty sheet. Read-only to this
// pipeline except for the append-only notification log.
type WarrantyRecord struct {
	UserName       string
	SerialNumber   string
	ExpirationDate time.Time
	ExtensionDate  time.Time
	InfoURL        string
}

// NormalizeName reduces a person name to its deduplication form:
// trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatDate renders a date as dd/mm/yyyy, the canonical form used by the
// dedup key and by the sheet's date column.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateShort renders a date as dd/mm/yy, the form used inside
// generated documents.
func FormatDateShort(t time.Time) string {
	return t.Format("02/01/06")
}

// FormatDateDashed renders a date as dd-mm-yyyy, the form embedded in
// signed-document filenames.
func FormatDateDashed(t time.Time) string {
	return t.Format("02-01-2006")
}

// ParseDate parses the date forms that appear in sheet cells and ticket
// titles: dd/mm/yyyy, dd-mm-yyyy and yyyy-mm-dd. Returns a zero time and
// false when the value is empty or matches none of them.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"02/01/2006", "02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatMonthYear renders a date as "mes de año" in Spanish, the format the
// warranty notification tables use.
func FormatMonthYear(t time.Time) string {
	return fmt.Sprintf("%s de %d", spanishMonths[int(t.Month())-1], t.Year())
}

// MonthsRemaining computes the whole-month distance between today and an
// expiration date using 1-based month arithmetic. This is deliberately
// coarse: downstream bucketing at exactly 1 and exactly 3 depends on this
// exact formula.
func MonthsRemaining(today, expiry time.Time) int {
	months := (expiry.Year() - today.Year()) * 12
	months -= int(today.Month())
	months += int(expiry.Month())
	return months
}

// SameMonth reports whether two dates fall in the same calendar month of
// the same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
