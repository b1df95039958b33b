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
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/docgen"
	"github.com/entregahq/entrega/model"
)

// actaFileName computes the canonical filename of a generated acta.
func actaFileName(personName string) string {
	return "Acta de Entrega de Materiales - " + personName + ".pdf"
}

// GenerateActas renders one PDF for every row whose action flag is set,
// files it into the actas folder, writes the document link back and clears
// the flag. A failure in any row is logged with the row index and leaves
// that row untouched for the next manual run; the batch always continues.
// The stock decrement is best-effort and never affects a row's outcome.
// Returns the number of documents generated.
func (e *Entrega) GenerateActas(ctx context.Context) (int, error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, err
	}
	sheet := conf.Sheets.Actas

	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return 0, err
	}

	generated := 0
	for i := 1; i < len(rows); i++ {
		row := i + 1

		// Re-read the flag cell: a previous iteration of this pass may
		// have changed the sheet under the snapshot.
		flag, err := e.store.ReadCell(sheet, row, model.ColAccion+1)
		if err != nil {
			return generated, err
		}
		if flag != model.ActionGenerate {
			continue
		}

		name := cellAt(rows, i, model.ColUsuario)
		adapter := cellAt(rows, i, model.ColAdaptadorRed)
		mouse := cellAt(rows, i, model.ColMouse)

		if err := e.generateActaRow(ctx, conf, rows, i); err != nil {
			logrus.Errorf("error generando el acta para la fila %d: %v", row, err)
			continue
		}

		// Best-effort side effect: failure is caught and logged, the row
		// stays successful and nothing is rolled back.
		e.decrementStock(conf, mouse, adapter)

		logrus.Infof("acta generada para %s (fila %d)", name, row)
		generated++
	}

	// Sweep the whole flag column below the first data row, mirroring the
	// final cleanup of the manual pass.
	if last, err := e.store.LastRow(sheet); err == nil && last >= 2 {
		if err := e.store.ClearRange(sheet, 2, model.ColAccion+1, last, model.ColAccion+1); err != nil {
			logrus.Errorf("error limpiando la columna de acciones: %v", err)
		}
	}

	// Empty the scratch folder regardless of how many rows succeeded.
	e.emptyFolder(ctx, conf.Folders.Scratch)

	if generated > 0 {
		logrus.Infof("se han generado todas las actas exitosamente (%d)", generated)
	} else {
		logrus.Info("no hay actas marcadas para generar")
	}
	return generated, nil
}

// generateActaRow runs steps 1-5 of the pipeline for one row: render,
// convert, dedup-by-filename, file, link back, clear flag.
func (e *Entrega) generateActaRow(ctx context.Context, conf *config.Configuration, rows [][]string, i int) error {
	sheet := conf.Sheets.Actas
	row := i + 1

	name := cellAt(rows, i, model.ColUsuario)

	fecha := ""
	if t, ok := model.ParseDate(cellAt(rows, i, model.ColFecha)); ok {
		fecha = model.FormatDateShort(t)
	}

	blob, err := e.renderer.RenderActa(ctx, docgen.ActaFields{
		NombreApellido: name,
		Sector:         cellAt(rows, i, model.ColSector),
		ModeloNTB:      cellAt(rows, i, model.ColModeloNTB),
		FechaEntrada:   fecha,
		AdaptadorRed:   cellAt(rows, i, model.ColAdaptadorRed),
		Mouse:          cellAt(rows, i, model.ColMouse),
	})
	if err != nil {
		return err
	}

	// Last writer wins: any existing file with the computed name is
	// trashed before the new one is filed.
	pdfName := actaFileName(name)
	existing, err := e.files.List(ctx, conf.Folders.Actas)
	if err != nil {
		return err
	}
	for _, f := range existing {
		if f.Name == pdfName {
			if err := e.files.Trash(ctx, f.ID); err != nil {
				return err
			}
		}
	}

	created, err := e.files.CreateFromBlob(ctx, conf.Folders.Actas, pdfName, blob)
	if err != nil {
		return err
	}

	if err := e.store.WriteCell(sheet, row, model.ColLinkActa+1, created.URL); err != nil {
		return err
	}
	return e.store.ClearCell(sheet, row, model.ColAccion+1)
}

// decrementStock applies the compensating inventory decrements for the
// accessories actually issued. A counter is only touched when its cell
// currently holds a numeric value. Errors are logged, never returned.
func (e *Entrega) decrementStock(conf *config.Configuration, mouse, adapter string) {
	if issued(mouse) {
		e.decrementCounter(conf.Sheets.Stock, model.StockSheetMouseRow)
	}
	if issued(adapter) {
		e.decrementCounter(conf.Sheets.Stock, model.StockSheetAdapterRow)
	}
}

// issued reports whether an accessory field names something handed over.
func issued(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "no")
}

func (e *Entrega) decrementCounter(sheet string, row int) {
	raw, err := e.store.ReadCell(sheet, row, model.StockSheetCountCol)
	if err != nil {
		logrus.Errorf("error al actualizar el stock: %v", err)
		return
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		// Not a numeric cell; leave it alone.
		return
	}
	if err := e.store.WriteCell(sheet, row, model.StockSheetCountCol, strconv.Itoa(count-1)); err != nil {
		logrus.Errorf("error al actualizar el stock: %v", err)
	}
}

// emptyFolder trashes every file in a folder, logging failures.
func (e *Entrega) emptyFolder(ctx context.Context, folderID string) (trashed, failed int) {
	files, err := e.files.List(ctx, folderID)
	if err != nil {
		logrus.Errorf("error listando la carpeta %s: %v", folderID, err)
		return 0, 1
	}
	for _, f := range files {
		if err := e.files.Trash(ctx, f.ID); err != nil {
			logrus.Errorf("error al mover %s a la papelera: %v", f.Name, err)
			failed++
			continue
		}
		trashed++
	}
	return trashed, failed
}
