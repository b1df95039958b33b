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

// Package docgen renders delivery-acknowledgment documents: a text
// template with fixed placeholders is filled per record and exported as a
// PDF blob. It also renders single-image PDFs for scanned signed copies.
package docgen

import (
	"context"
	"strings"
)

// ActaFields carries the raw row values substituted into the template.
// Optional fields (PC model, adapter, mouse) may be empty or the literal
// sentinel "no", which both render as nothing.
type ActaFields struct {
	NombreApellido string
	Sector         string
	ModeloNTB      string
	FechaEntrada   string // already formatted dd/mm/yy, or empty
	AdaptadorRed   string
	Mouse          string
}

// Renderer is the document-generation collaborator the pipeline consumes.
type Renderer interface {
	// RenderActa fills the acta template with the given fields and returns
	// a PDF blob.
	RenderActa(ctx context.Context, fields ActaFields) ([]byte, error)
	// RenderImagePDF wraps a scanned image into a single-page PDF blob.
	RenderImagePDF(ctx context.Context, image []byte, mimeType string) ([]byte, error)
}

// isNo reports whether an optional accessory value means "not issued".
func isNo(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "no")
}

// PlaceholderValues maps each template placeholder to its rendered value.
// Accessory fields render as a bulleted line with a fixed label prefix;
// the model renders as a bare bullet; absent or "no" values render empty.
func PlaceholderValues(f ActaFields) map[string]string {
	values := map[string]string{
		"{{NombreApellido}}": f.NombreApellido,
		"{{Sector}}":         f.Sector,
		"{{FechaEntrada}}":   f.FechaEntrada,
		"{{ModeloNTB}}":      "",
		"{{AdaptadorRed}}":   "",
		"{{Mouse}}":          "",
	}
	if strings.TrimSpace(f.ModeloNTB) != "" {
		values["{{ModeloNTB}}"] = "• " + f.ModeloNTB
	}
	if !isNo(f.AdaptadorRed) {
		values["{{AdaptadorRed}}"] = "• Adaptador de red: " + f.AdaptadorRed
	}
	if !isNo(f.Mouse) {
		values["{{Mouse}}"] = "• Mouse: " + f.Mouse
	}
	return values
}

// FillTemplate substitutes every placeholder occurrence in the template
// text. Unknown placeholders are left alone.
func FillTemplate(template string, f ActaFields) string {
	out := template
	for token, value := range PlaceholderValues(f) {
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}
