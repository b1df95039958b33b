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

// Package entrega automates the asset-handoff paperwork pipeline: ticket
// intake reconciliation, acta generation, signed-document link matching,
// warranty notifications and signed-image ingestion. Every operation is a
// synchronous batch pass over the tracking workbook.
package entrega

import (
	"context"
	"time"

	"github.com/entregahq/entrega/docgen"
	"github.com/entregahq/entrega/filestore"
	"github.com/entregahq/entrega/internal/mailer"
	"github.com/entregahq/entrega/invgate"
	"github.com/entregahq/entrega/ocr"
	"github.com/entregahq/entrega/store"
)

// TicketAPI is the slice of the ticketing client the intake pass consumes.
type TicketAPI interface {
	ViewRequestIDs(ctx context.Context, viewID int) ([]int, error)
	IncidentsByIDs(ctx context.Context, ids []int) (map[string]invgate.Incident, error)
	TicketURL(id string) string
}

// Entrega wires the pipeline's collaborators together. All state lives in
// the row store and the file store; the struct itself is stateless and a
// single instance serves every command.
type Entrega struct {
	store    store.RowStore
	files    filestore.Store
	renderer docgen.Renderer
	tickets  TicketAPI
	mailer   mailer.Mailer
	ocr      ocr.Extractor
	now      func() time.Time
}

// NewEntrega builds the pipeline service from its collaborators.
func NewEntrega(rows store.RowStore, files filestore.Store, renderer docgen.Renderer, tickets TicketAPI, mail mailer.Mailer, extractor ocr.Extractor) *Entrega {
	return &Entrega{
		store:    rows,
		files:    files,
		renderer: renderer,
		tickets:  tickets,
		mailer:   mail,
		ocr:      extractor,
		now:      time.Now,
	}
}

// today returns the current date truncated to midnight, the reference
// point for intake date filtering.
func (e *Entrega) today() time.Time {
	n := e.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// cellAt returns the value of a zero-based matrix position, tolerating
// short rows.
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	if col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}
