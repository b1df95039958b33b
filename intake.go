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
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/internal/extract"
	"github.com/entregahq/entrega/invgate"
	"github.com/entregahq/entrega/model"
)

// pendingIntake is one accepted ticket waiting to be appended to the
// actas sheet.
type pendingIntake struct {
	TicketID string
	Name     string
	Sector   string
	Puesto   string
	TipoPC   string
	Date     time.Time
}

// ReconcileIntake polls the ticketing view, extracts candidate handoffs
// from the returned tickets, filters them by date and the explicit
// "needs PC" indicator, deduplicates against existing rows and appends the
// survivors with the generation flag set. Returns the number of accepted
// records. Any API or store failure aborts the whole run with nothing
// written; re-running is safe because acceptance is keyed on (name, date).
func (e *Entrega) ReconcileIntake(ctx context.Context) (int, error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, err
	}

	ids, err := e.tickets.ViewRequestIDs(ctx, conf.InvGate.ViewID)
	if err != nil {
		return 0, errors.Wrap(err, "fetching ticket view")
	}
	if len(ids) == 0 {
		logrus.Info("no se encontraron IDs de solicitudes en la vista")
		return 0, nil
	}

	incidents, err := e.tickets.IncidentsByIDs(ctx, ids)
	if err != nil {
		return 0, errors.Wrap(err, "fetching ticket bodies")
	}

	pending, err := e.selectPending(conf, incidents)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		logrus.Info("no hay nuevos ingresos disponibles para hoy o los próximos días")
		return 0, nil
	}

	if err := e.appendPending(conf, pending); err != nil {
		return 0, err
	}
	logrus.Infof("usuarios cargados automáticamente: %d", len(pending))
	return len(pending), nil
}

// selectPending runs each ticket through the acceptance pipeline:
// field extraction, date filter, needs-PC filter, dedup check.
func (e *Entrega) selectPending(conf *config.Configuration, incidents map[string]invgate.Incident) ([]pendingIntake, error) {
	today := e.today()

	// Visit tickets in ID order so repeated runs append in the same order.
	ticketIDs := make([]string, 0, len(incidents))
	for id := range incidents {
		ticketIDs = append(ticketIDs, id)
	}
	sort.Strings(ticketIDs)

	var pending []pendingIntake
	for _, id := range ticketIDs {
		incident := incidents[id]

		name, nameOK := extract.Field(incident.Description, "Nombre y apellido")
		sector, sectorOK := extract.Field(incident.Description, "Sector")
		puesto, _ := extract.Field(incident.Description, "Puesto")
		tipoPC, _ := extract.Field(incident.Description, "Tipo de PC")
		day, month, year, dateOK := extract.DateFromTitle(incident.Title)

		if !nameOK || !sectorOK || !dateOK {
			continue
		}
		name = extract.StripParenSuffix(name)

		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())
		if date.Before(today) {
			continue
		}
		if !extract.NeedsPC(incident.Description) {
			continue
		}

		exists, err := e.ExistsRecord(conf.Sheets.Actas, name, model.FormatDate(date))
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		logrus.Debugf("ingreso aceptado: %s (%s, %s) ticket %s", name, sector, puesto, id)
		pending = append(pending, pendingIntake{
			TicketID: id,
			Name:     name,
			Sector:   sector,
			Puesto:   puesto,
			TipoPC:   tipoPC,
			Date:     date,
		})
	}
	return pending, nil
}

// appendPending writes the accepted records after the header block, each
// with its ticket hyperlink and the generation flag set.
func (e *Entrega) appendPending(conf *config.Configuration, pending []pendingIntake) error {
	last, err := e.store.LastRow(conf.Sheets.Actas)
	if err != nil {
		return err
	}
	next := last + 1
	if next < model.FirstDataRow {
		next = model.FirstDataRow
	}

	for _, p := range pending {
		sheet := conf.Sheets.Actas
		if err := e.store.WriteCell(sheet, next, model.ColFecha+1, model.FormatDate(p.Date)); err != nil {
			return err
		}
		if err := e.store.WriteCell(sheet, next, model.ColUsuario+1, p.Name); err != nil {
			return err
		}
		if err := e.store.WriteCell(sheet, next, model.ColSector+1, p.Sector); err != nil {
			return err
		}
		if err := e.store.WriteLink(sheet, next, model.ColTicket+1, e.tickets.TicketURL(p.TicketID), p.TicketID); err != nil {
			return err
		}
		if err := e.store.WriteCell(sheet, next, model.ColModeloNTB+1, p.TipoPC); err != nil {
			return err
		}
		if err := e.store.WriteCell(sheet, next, model.ColAccion+1, model.ActionGenerate); err != nil {
			return err
		}
		next++
	}
	return nil
}
