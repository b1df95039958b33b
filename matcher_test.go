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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entregahq/entrega/config"
)

func TestExistsRecord(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.Actas

	env.addActaRow(t, []string{"01/06/2024", "Ana Gómez", "Sistemas"})

	exists, err := env.e.ExistsRecord(sheet, "Ana Gómez", "01/06/2024")
	require.NoError(t, err)
	assert.True(t, exists)

	// Name comparison is trimmed and lowercased.
	exists, err = env.e.ExistsRecord(sheet, "  ana gómez  ", "01/06/2024")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same name, different date is a different record.
	exists, err = env.e.ExistsRecord(sheet, "Ana Gómez", "02/06/2024")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = env.e.ExistsRecord(sheet, "Juan Pérez", "01/06/2024")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsRecordIgnoresHeaderRows(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.Actas

	// A header row that happens to look like a record must never match.
	env.rows.setCell(sheet, 2, 1, "01/06/2024")
	env.rows.setCell(sheet, 2, 2, "Ana Gómez")

	exists, err := env.e.ExistsRecord(sheet, "Ana Gómez", "01/06/2024")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsRecordMissingSheet(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.e.ExistsRecord("no existe", "Ana", "01/06/2024")
	assert.Error(t, err)
}

func TestMatchFile(t *testing.T) {
	index := map[string]string{
		"Ana Gómez - 01-06-2024.pdf":  "url-ana",
		"Juan Pérez - 02-06-2024.pdf": "url-juan",
	}

	url, ok := MatchFile(index, "Ana Gómez - 01-06-2024")
	assert.True(t, ok)
	assert.Equal(t, "url-ana", url)

	_, ok = MatchFile(index, "Ana Gómez - 02-06-2024")
	assert.False(t, ok)

	_, ok = MatchFile(map[string]string{}, "cualquiera")
	assert.False(t, ok)
}

func TestMatchFileDeterministic(t *testing.T) {
	// Two files contain the pattern; sorted order fixes the winner.
	index := map[string]string{
		"b Ana - 01-06-2024 copia.pdf": "url-b",
		"a Ana - 01-06-2024.pdf":       "url-a",
	}
	for i := 0; i < 10; i++ {
		url, ok := MatchFile(index, "Ana - 01-06-2024")
		assert.True(t, ok)
		assert.Equal(t, "url-a", url)
	}
}
