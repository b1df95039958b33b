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
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/model"
)

// LinkedActa is one signed document newly linked by the indexed pass.
type LinkedActa struct {
	Name string
	Date string
}

// LinkSignedActas back-fills signed-document links by re-enumerating the
// signed folder once per unlinked row and taking the first file whose name
// contains the person name as a substring. No date qualification. Kept as
// the documented fallback for the indexed variant. Returns the names that
// were newly linked.
func (e *Entrega) LinkSignedActas(ctx context.Context) ([]string, error) {
	conf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	sheet := conf.Sheets.Actas

	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return nil, err
	}

	var linked []string
	for i := len(rows) - 1; i >= 2; i-- {
		name := strings.TrimSpace(cellAt(rows, i, model.ColUsuario))
		if name == "" {
			continue
		}

		current, err := e.store.ReadCell(sheet, i+1, model.ColLinkFirmada+1)
		if err != nil {
			return linked, err
		}
		if current != "" {
			continue
		}

		files, err := e.files.List(ctx, conf.Folders.ActasFirmadas)
		if err != nil {
			return linked, err
		}
		for _, f := range files {
			if strings.Contains(f.Name, name) {
				if err := e.store.WriteCell(sheet, i+1, model.ColLinkFirmada+1, f.URL); err != nil {
					return linked, err
				}
				linked = append(linked, name)
				break
			}
		}
	}

	if len(linked) > 0 {
		logrus.Infof("se encontraron links de actas para: %s", strings.Join(linked, ", "))
	} else {
		logrus.Info("no se encontraron links nuevos")
	}
	return linked, nil
}

// LinkSignedActasIndexed is the preferred reconciliation: one folder listing
// builds a filename index, then rows are visited newest-first. A row is
// linkable when its link cell is empty and its entry date parses; the
// required filename pattern is "<name> - dd-mm-yyyy" as an exact substring.
// The first two data rows are always skipped. Returns the (name, date)
// pairs newly linked; an empty result means none were found.
func (e *Entrega) LinkSignedActasIndexed(ctx context.Context) ([]LinkedActa, error) {
	conf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	sheet := conf.Sheets.Actas

	rows, err := e.store.ReadRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		logrus.Info("no hay suficientes datos para procesar")
		return nil, nil
	}

	files, err := e.files.List(ctx, conf.Folders.ActasFirmadas)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(files))
	for _, f := range files {
		index[f.Name] = f.URL
	}

	var linked []LinkedActa
	for i := len(rows) - 1; i >= 2; i-- {
		name := strings.TrimSpace(cellAt(rows, i, model.ColUsuario))
		if name == "" {
			continue
		}

		current, err := e.store.ReadCell(sheet, i+1, model.ColLinkFirmada+1)
		if err != nil {
			return linked, err
		}
		if current != "" {
			continue
		}

		date, ok := model.ParseDate(cellAt(rows, i, model.ColFecha))
		if !ok {
			continue
		}

		pattern := name + " - " + model.FormatDateDashed(date)
		url, found := MatchFile(index, pattern)
		if !found {
			logClosestFile(index, pattern)
			continue
		}

		if err := e.store.WriteCell(sheet, i+1, model.ColLinkFirmada+1, url); err != nil {
			return linked, err
		}
		linked = append(linked, LinkedActa{Name: name, Date: model.FormatDateDashed(date)})
	}

	if len(linked) > 0 {
		for _, l := range linked {
			logrus.Infof("acta firmada encontrada: %s (%s)", l.Name, l.Date)
		}
	} else {
		logrus.Info("no se encontraron actas nuevas")
	}
	return linked, nil
}
