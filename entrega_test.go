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
	"time"

	"github.com/entregahq/entrega/config"
)

// Folder IDs used by the in-memory file store in tests.
const (
	folderScratch  = "borrar"
	folderActas    = "actas"
	folderFirmadas = "firmadas"
	folderOrigen   = "origen"
	folderDestino  = "destino"
)

// testNow is the fixed clock every pipeline test runs under.
var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

// testEnv bundles a pipeline service with all its in-memory collaborators.
type testEnv struct {
	e        *Entrega
	rows     *mockRowStore
	files    *mockFileStore
	renderer *mockRenderer
	mailer   *mockMailer
	tickets  *mockTickets
	ocr      *mockOCR
}

// newTestEnv wires an Entrega over mocks, installs a mock config with the
// default sheet names and seeds the workbook's header blocks.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.MockConfig(&config.Configuration{
		Folders: config.FoldersConfig{
			Scratch:         folderScratch,
			Actas:           folderActas,
			ActasFirmadas:   folderFirmadas,
			ImagenesOrigen:  folderOrigen,
			ImagenesDestino: folderDestino,
		},
		Email: config.EmailConfig{To: "it@example.com"},
	})
	conf, err := config.Fetch()
	if err != nil {
		t.Fatal(err)
	}

	rows := newMockRowStore()
	rows.sheets[conf.Sheets.Actas] = [][]string{
		{"Acta de entregas"},
		{},
		{},
		{"Fecha", "Usuario", "Sector", "Ticket", "Firmada", "Modelo", "Adaptador", "Mouse", "Acta", "Acción"},
	}
	rows.sheets[conf.Sheets.Stock] = [][]string{
		{"Mouse", "10"},
		{"Adaptador de red", "5"},
	}
	rows.sheets[conf.Sheets.Garantias] = [][]string{
		{"Usuario", "Serial", "Vencimiento", "Extensión"},
	}
	rows.sheets[conf.Sheets.MailLog] = [][]string{
		{"Serial", "Fecha de envío"},
	}
	rows.sheets[conf.Sheets.PDFActas] = [][]string{
		{"URL", "Estado"},
	}

	files := newMockFileStore(folderScratch, folderActas, folderFirmadas, folderOrigen, folderDestino)
	renderer := &mockRenderer{}
	mail := &mockMailer{}
	tickets := &mockTickets{}
	extractor := &mockOCR{texts: make(map[string]string)}

	e := NewEntrega(rows, files, renderer, tickets, mail, extractor)
	e.now = func() time.Time { return testNow }

	return &testEnv{e: e, rows: rows, files: files, renderer: renderer, mailer: mail, tickets: tickets, ocr: extractor}
}

// addActaRow appends a data row to the actas sheet at the next free row.
func (env *testEnv) addActaRow(t *testing.T, values []string) int {
	t.Helper()
	conf, err := config.Fetch()
	if err != nil {
		t.Fatal(err)
	}
	last, err := env.rows.LastRow(conf.Sheets.Actas)
	if err != nil {
		t.Fatal(err)
	}
	row := last + 1
	for i, v := range values {
		env.rows.setCell(conf.Sheets.Actas, row, i+1, v)
	}
	return row
}
