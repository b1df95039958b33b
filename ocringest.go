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
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/internal/extract"
	"github.com/entregahq/entrega/model"
)

// Per-row status values written into column B of the ingestion sheet.
const (
	statusInvalidURL    = "❌ URL inválida"
	statusNoNameOrDate  = "❌ No se pudo extraer nombre o fecha"
	statusErrorPrefix   = "⚠️ Error: "
	statusDonePrefix    = "✅ "
	ingestFirstDataRow  = 2
	ingestColURL        = 1
	ingestColStatus     = 2
)

// fileIDPattern matches a storage file ID token inside a share URL.
var fileIDPattern = regexp.MustCompile(`[-\w]{25,}`)

// fileIDFromURL extracts a file identifier from a registered image URL.
// Local store URLs carry the path directly; anything else must contain an
// ID-shaped token.
func fileIDFromURL(url string) (string, bool) {
	if rest, ok := strings.CutPrefix(url, "file://"); ok {
		return rest, true
	}
	if m := fileIDPattern.FindString(url); m != "" {
		return m, true
	}
	return "", false
}

// LoadImagesFromFolder scans the source folder and registers every image
// file not yet present in the ingestion sheet, one URL per row in column A.
// Returns the counts of newly added and already-registered images.
func (e *Entrega) LoadImagesFromFolder(ctx context.Context) (added, existing int, err error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, 0, err
	}
	sheet := conf.Sheets.PDFActas

	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]bool)
	for i := ingestFirstDataRow - 1; i < len(rows); i++ {
		if url := strings.TrimSpace(cellAt(rows, i, ingestColURL-1)); url != "" {
			seen[url] = true
		}
	}

	files, err := e.files.List(ctx, conf.Folders.ImagenesOrigen)
	if err != nil {
		return 0, 0, err
	}

	next, err := e.store.LastRow(sheet)
	if err != nil {
		return 0, 0, err
	}
	next++
	if next < ingestFirstDataRow {
		next = ingestFirstDataRow
	}

	for _, f := range files {
		if !strings.HasPrefix(f.MIMEType, "image/") {
			continue
		}
		if seen[f.URL] {
			existing++
			continue
		}
		if err := e.store.WriteCell(sheet, next, ingestColURL, f.URL); err != nil {
			return added, existing, err
		}
		seen[f.URL] = true
		next++
		added++
	}

	logrus.Infof("proceso completado: nuevas imágenes agregadas: %d, ya existentes: %d", added, existing)
	return added, existing, nil
}

// ProcessImages runs OCR over every registered image and files the result
// as a single-image PDF named "<name> - dd-mm-yyyy.pdf" in the destination
// folder. Each row's outcome is written into column B; a failing row never
// stops the batch. Returns the number of PDFs produced.
func (e *Entrega) ProcessImages(ctx context.Context) (int, error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, err
	}
	sheet := conf.Sheets.PDFActas

	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := ingestFirstDataRow - 1; i < len(rows); i++ {
		url := strings.TrimSpace(cellAt(rows, i, ingestColURL-1))
		if url == "" {
			continue
		}
		row := i + 1

		fileID, ok := fileIDFromURL(url)
		if !ok {
			if err := e.store.WriteCell(sheet, row, ingestColStatus, statusInvalidURL); err != nil {
				return processed, err
			}
			continue
		}

		pdfName, err := e.processImage(ctx, conf, fileID)
		status := ""
		switch {
		case err != nil:
			status = statusErrorPrefix + err.Error()
		case pdfName == "":
			status = statusNoNameOrDate
		default:
			status = statusDonePrefix + pdfName
			processed++
		}
		if werr := e.store.WriteCell(sheet, row, ingestColStatus, status); werr != nil {
			return processed, werr
		}
	}
	return processed, nil
}

// processImage OCRs one image and files the rendered PDF. An empty name
// with a nil error means the text lacked the required name or date.
func (e *Entrega) processImage(ctx context.Context, conf *config.Configuration, fileID string) (string, error) {
	file, err := e.files.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	blob, err := e.files.ReadBlob(ctx, fileID)
	if err != nil {
		return "", err
	}

	text, err := e.ocr.ExtractText(ctx, blob, file.MIMEType)
	if err != nil {
		return "", err
	}

	name, nameOK := extract.LabeledName(text)
	isoDate, dateOK := extract.DateFromBody(text)
	if !nameOK || !dateOK {
		return "", nil
	}
	date, ok := model.ParseDate(isoDate)
	if !ok {
		return "", nil
	}

	pdfName := fmt.Sprintf("%s - %s.pdf", name, model.FormatDateDashed(date))
	pdfBlob, err := e.renderer.RenderImagePDF(ctx, blob, file.MIMEType)
	if err != nil {
		return "", err
	}
	if _, err := e.files.CreateFromBlob(ctx, conf.Folders.ImagenesDestino, pdfName, pdfBlob); err != nil {
		return "", err
	}
	return pdfName, nil
}

// RunSequence loads new images and then processes them. The first failure
// aborts the whole sequence.
func (e *Entrega) RunSequence(ctx context.Context) (int, error) {
	if _, _, err := e.LoadImagesFromFolder(ctx); err != nil {
		return 0, err
	}
	return e.ProcessImages(ctx)
}

// CleanSourceFolder trashes every file in the source folder and clears the
// ingestion sheet's URL and status columns from the first data row down.
// Returns the trashed and error counts.
func (e *Entrega) CleanSourceFolder(ctx context.Context) (trashed, failed int, err error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, 0, err
	}

	trashed, failed = e.emptyFolder(ctx, conf.Folders.ImagenesOrigen)

	sheet := conf.Sheets.PDFActas
	last, lerr := e.store.LastRow(sheet)
	if lerr != nil {
		logrus.Errorf("error al limpiar las celdas: %v", lerr)
		failed++
	} else if last >= ingestFirstDataRow {
		if cerr := e.store.ClearRange(sheet, ingestFirstDataRow, ingestColURL, last, ingestColStatus); cerr != nil {
			logrus.Errorf("error al limpiar las celdas: %v", cerr)
			failed++
		}
	}

	logrus.Infof("limpieza completada: archivos movidos a la papelera: %d, errores: %d", trashed, failed)
	return trashed, failed, nil
}
