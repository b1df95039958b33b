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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entregahq/entrega/config"
)

func TestFileIDFromURL(t *testing.T) {
	id, ok := fileIDFromURL("file:///tmp/origen/foto.jpg")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/origen/foto.jpg", id)

	id, ok = fileIDFromURL("https://drive.google.com/file/d/1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345/view")
	assert.True(t, ok)
	assert.Equal(t, "1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345", id)

	_, ok = fileIDFromURL("https://example.com/corto")
	assert.False(t, ok)
}

func TestLoadImagesFromFolder(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.PDFActas
	ctx := context.Background()

	img := env.files.add(folderOrigen, "acta-ana.jpg", "image/jpeg", []byte("img"))
	env.files.add(folderOrigen, "notas.txt", "text/plain", []byte("texto"))

	added, existing, err := env.e.LoadImagesFromFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, existing)

	got, _ := env.rows.ReadCell(sheet, ingestFirstDataRow, ingestColURL)
	assert.Equal(t, img.URL, got)

	// Second scan finds the same image already registered.
	added, existing, err = env.e.LoadImagesFromFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, existing)
}

// ocrText builds the text the extractor returns for a signed acta image.
func ocrText(name, shortDate string) string {
	return fmt.Sprintf("ACTA DE ENTREGA\nNombre del Empleado: %s\nFecha: %s\nFirma: ...", name, shortDate)
}

func TestProcessImages(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.PDFActas
	ctx := context.Background()

	img := env.files.add(folderOrigen, "acta-ana.jpg", "image/jpeg", []byte("img-ana"))
	env.ocr.texts["img-ana"] = ocrText("Ana Gómez", "01/06/24")
	require.NoError(t, env.rows.WriteCell(sheet, ingestFirstDataRow, ingestColURL, img.URL))

	n, err := env.e.ProcessImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	status, _ := env.rows.ReadCell(sheet, ingestFirstDataRow, ingestColStatus)
	assert.Equal(t, "✅ Ana Gómez - 01-06-2024.pdf", status)

	files, err := env.files.List(ctx, folderDestino)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Ana Gómez - 01-06-2024.pdf", files[0].Name)
}

func TestProcessImagesRowStatuses(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.PDFActas
	ctx := context.Background()

	// Row 2: invalid URL. Row 3: OCR text without the labeled fields.
	// Row 4: file missing from the store.
	img := env.files.add(folderOrigen, "borroso.jpg", "image/jpeg", []byte("img-borroso"))
	env.ocr.texts["img-borroso"] = "texto ilegible"
	require.NoError(t, env.rows.WriteCell(sheet, 2, ingestColURL, "https://example.com/x"))
	require.NoError(t, env.rows.WriteCell(sheet, 3, ingestColURL, img.URL))
	require.NoError(t, env.rows.WriteCell(sheet, 4, ingestColURL, "file:///no/existe.jpg"))

	n, err := env.e.ProcessImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	status, _ := env.rows.ReadCell(sheet, 2, ingestColStatus)
	assert.Equal(t, statusInvalidURL, status)
	status, _ = env.rows.ReadCell(sheet, 3, ingestColStatus)
	assert.Equal(t, statusNoNameOrDate, status)
	status, _ = env.rows.ReadCell(sheet, 4, ingestColStatus)
	assert.Contains(t, status, statusErrorPrefix)
}

func TestRunSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.files.add(folderOrigen, "acta-ana.jpg", "image/jpeg", []byte("img-ana"))
	env.ocr.texts["img-ana"] = ocrText("Ana Gómez", "01/06/24")

	n, err := env.e.RunSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	files, err := env.files.List(ctx, folderDestino)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCleanSourceFolder(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.PDFActas
	ctx := context.Background()

	env.files.add(folderOrigen, "a.jpg", "image/jpeg", nil)
	env.files.add(folderOrigen, "b.jpg", "image/jpeg", nil)
	require.NoError(t, env.rows.WriteCell(sheet, 2, ingestColURL, "url"))
	require.NoError(t, env.rows.WriteCell(sheet, 2, ingestColStatus, "✅ listo"))

	trashed, failed, err := env.e.CleanSourceFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, trashed)
	assert.Equal(t, 0, failed)

	files, err := env.files.List(ctx, folderOrigen)
	require.NoError(t, err)
	assert.Empty(t, files)

	url, _ := env.rows.ReadCell(sheet, 2, ingestColURL)
	assert.Empty(t, url)
	status, _ := env.rows.ReadCell(sheet, 2, ingestColStatus)
	assert.Empty(t, status)
}
