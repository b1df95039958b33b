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

package docgen

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/entregahq/entrega/filestore"
)

// PDFRenderer renders actas from a text template stored in the file store.
// Each render copies the filled template into the scratch folder before
// exporting, so a generation pass leaves an inspectable trail that the
// pipeline trashes afterwards.
type PDFRenderer struct {
	files      filestore.Store
	templateID string
	scratchID  string
}

// NewPDFRenderer builds a renderer over the given template file and
// scratch folder.
func NewPDFRenderer(files filestore.Store, templateID, scratchID string) *PDFRenderer {
	return &PDFRenderer{files: files, templateID: templateID, scratchID: scratchID}
}

func (r *PDFRenderer) RenderActa(ctx context.Context, fields ActaFields) ([]byte, error) {
	template, err := r.files.ReadBlob(ctx, r.templateID)
	if err != nil {
		return nil, errors.Wrap(err, "reading acta template")
	}

	filled := FillTemplate(string(template), fields)

	// Scratch copy of the filled document, uuid-named to avoid clashes
	// within a pass. The generation pipeline empties the folder afterwards.
	scratchName := "Acta de Entrega de Materiales - " + fields.NombreApellido + " - " + uuid.New().String() + ".txt"
	if _, err := r.files.CreateFromBlob(ctx, r.scratchID, scratchName, []byte(filled)); err != nil {
		return nil, errors.Wrap(err, "filing scratch copy")
	}

	return renderTextPDF(filled)
}

func (r *PDFRenderer) RenderImagePDF(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	imageType := ""
	switch mimeType {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return nil, errors.Errorf("unsupported image type %q", mimeType)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("signed-acta", opts, bytes.NewReader(image))
	// Full usable page width; height scales to keep the aspect ratio.
	pdf.ImageOptions("signed-acta", 10, 10, 190, 0, false, opts, 0, "")
	if pdf.Err() {
		return nil, errors.Errorf("rendering image pdf: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "exporting image pdf")
	}
	return buf.Bytes(), nil
}

// renderTextPDF lays the filled template text out on A4 pages. Blank lines
// from empty optional placeholders are dropped to match how the rendered
// acta reads.
func renderTextPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.MultiCell(190, 6, tr(line), "", "L", false)
	}
	if pdf.Err() {
		return nil, errors.Errorf("rendering acta pdf: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "exporting acta pdf")
	}
	return buf.Bytes(), nil
}
