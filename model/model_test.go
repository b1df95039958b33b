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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"01/06/2024", "01-06-2024", "2024-06-01", "  01/06/2024  "} {
		got, ok := ParseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "mañana", "2024/06/01"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestDateFormats(t *testing.T) {
	d := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "01/06/2024", FormatDate(d))
	assert.Equal(t, "01/06/24", FormatDateShort(d))
	assert.Equal(t, "01-06-2024", FormatDateDashed(d))
	assert.Equal(t, "junio de 2024", FormatMonthYear(d))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ana gómez", NormalizeName("  Ana Gómez  "))
	assert.Equal(t, NormalizeName("ANA GÓMEZ"), NormalizeName("ana gómez"))
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)
	c := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameMonth(a, b))
	assert.False(t, SameMonth(a, c))
}
