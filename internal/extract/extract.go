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

// Package extract holds the pure text-extraction helpers used by intake
// reconciliation and OCR ingestion: HTML entity decoding and pattern-based
// field extraction from semi-structured ticket bodies.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericEntityRe = regexp.MustCompile(`&#(x?)([0-9A-Fa-f]+);`)
	titleDateRe     = regexp.MustCompile(`\((\d{2}/\d{2}/\d{4})\)`)
	bodyDateRe      = regexp.MustCompile(`Fecha\s*:\s*(\d{2}/\d{2}/\d{2})`)
	labeledNameRe   = regexp.MustCompile(`(?i)Nombre del Empleado:\s*(.+)`)
	needsPCRe       = regexp.MustCompile(`(?i)PC</td>\s*<td[^>]*>SI`)
	parenSuffixRe   = regexp.MustCompile(`\s*\(.*?\)\s*$`)
)

// namedEntities covers the Spanish-locale entities that show up in ticket
// bodies. Unknown entities pass through unchanged.
var namedEntities = strings.NewReplacer(
	"&aacute;", "á",
	"&eacute;", "é",
	"&iacute;", "í",
	"&oacute;", "ó",
	"&uacute;", "ú",
	"&ntilde;", "ñ",
	"&uuml;", "ü",
	"&amp;", "&",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
)

// DecodeEntities replaces numeric character references and the fixed set of
// named Spanish-locale entities with their literal characters. It is
// idempotent on already-decoded input.
func DecodeEntities(s string) string {
	if s == "" {
		return ""
	}
	s = numericEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := numericEntityRe.FindStringSubmatch(m)
		base := 10
		if sub[1] == "x" {
			base = 16
		}
		code, err := strconv.ParseInt(sub[2], base, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
	return namedEntities.Replace(s)
}

// Field returns the trimmed, entity-decoded content of the table cell that
// follows the given label in an HTML fragment, or "" and false when the
// label is not present. Matching is case-insensitive and tolerant of
// attribute noise on the value cell.
func Field(text, label string) (string, bool) {
	re, err := regexp.Compile(`(?i)<td>` + regexp.QuoteMeta(label) + `</td>\s*<td[^>]*>([^<]+)</td>`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(DecodeEntities(m[1])), true
}

// DateFromTitle finds a dd/mm/yyyy token enclosed in parentheses anywhere
// in a ticket title.
func DateFromTitle(title string) (day, month, year int, ok bool) {
	m := titleDateRe.FindStringSubmatch(title)
	if m == nil {
		return 0, 0, 0, false
	}
	parts := strings.Split(m[1], "/")
	day, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	year, _ = strconv.Atoi(parts[2])
	return day, month, year, true
}

// DateFromBody finds a "Fecha: dd/mm/yy" token in free text and expands it
// to an ISO yyyy-mm-dd date, assuming a 20yy century.
func DateFromBody(text string) (string, bool) {
	m := bodyDateRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	parts := strings.Split(m[1], "/")
	return fmt.Sprintf("20%s-%s-%s", parts[2], parts[1], parts[0]), true
}

// LabeledName finds the content after "Nombre del Empleado:" up to the end
// of the line.
func LabeledName(text string) (string, bool) {
	m := labeledNameRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := m[1]
	if idx := strings.IndexAny(name, "\r\n"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}

// NeedsPC reports whether a ticket body carries the explicit "needs PC"
// indicator (a PC cell answered SI).
func NeedsPC(description string) bool {
	return needsPCRe.MatchString(description)
}

// StripParenSuffix removes a trailing parenthesized annotation from an
// extracted person name, e.g. "Ana Gómez (RRHH)" -> "Ana Gómez".
func StripParenSuffix(name string) string {
	return parenSuffixRe.ReplaceAllString(name, "")
}
