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

// Warranty sheet column layout, zero-based. The serial cell carries the
// vendor info page as a hyperlink.
const (
	warrantyColUser      = 0
	warrantyColSerial    = 1
	warrantyColExpiry    = 2
	warrantyColExtension = 3
)

// NotifyWarranties scans the warranty sheet, buckets rows whose coarse
// months-remaining value is exactly 1 or exactly 3, drops serials already
// notified this calendar month and sends the combined HTML summary as one
// email. One log row per notified serial is appended afterwards so the next
// run within the month stays silent. Returns the number of serials
// notified; zero with a nil error means nothing was due.
func (e *Entrega) NotifyWarranties(ctx context.Context) (int, error) {
	conf, err := config.Fetch()
	if err != nil {
		return 0, err
	}

	rows, err := e.store.ReadRows(conf.Sheets.Garantias)
	if err != nil {
		return 0, err
	}

	sentThisMonth, err := e.sentThisMonth(conf)
	if err != nil {
		return 0, err
	}

	today := e.today()
	var oneMonth, threeMonths []model.WarrantyRecord
	for i := 1; i < len(rows); i++ {
		serial := strings.TrimSpace(cellAt(rows, i, warrantyColSerial))
		if serial == "" || sentThisMonth[serial] {
			continue
		}
		expiry, ok := model.ParseDate(cellAt(rows, i, warrantyColExpiry))
		if !ok {
			continue
		}

		// Anything other than exactly 1 or exactly 3 is silently excluded.
		remaining := model.MonthsRemaining(today, expiry)
		if remaining != 1 && remaining != 3 {
			continue
		}

		url, err := e.store.ReadLink(conf.Sheets.Garantias, i+1, warrantyColSerial+1)
		if err != nil {
			return 0, err
		}
		rec := model.WarrantyRecord{
			UserName:       cellAt(rows, i, warrantyColUser),
			SerialNumber:   serial,
			ExpirationDate: expiry,
			InfoURL:        url,
		}
		if ext, ok := model.ParseDate(cellAt(rows, i, warrantyColExtension)); ok {
			rec.ExtensionDate = ext
		}

		if remaining == 1 {
			oneMonth = append(oneMonth, rec)
		} else {
			threeMonths = append(threeMonths, rec)
		}
	}

	message := buildMessage(oneMonth, threeMonths)
	if message == "" {
		logrus.Info("no se encontraron garantías próximas a vencer en 1 mes o 3 meses")
		return 0, nil
	}

	if err := e.mailer.SendHTML(conf.Email.To, conf.Email.Subject, message); err != nil {
		return 0, err
	}
	logrus.Infof("email enviado a: %s", conf.Email.To)

	notified := 0
	for _, rec := range append(oneMonth, threeMonths...) {
		if _, err := e.store.AppendRow(conf.Sheets.MailLog, []string{rec.SerialNumber, model.FormatDate(today)}); err != nil {
			return notified, err
		}
		notified++
	}
	return notified, nil
}

// sentThisMonth builds the suppression set from the notification log: the
// serials whose last send date falls in the current calendar month. The log
// is append-only and re-scanned in full on every run.
func (e *Entrega) sentThisMonth(conf *config.Configuration) (map[string]bool, error) {
	rows, err := e.store.ReadRows(conf.Sheets.MailLog)
	if err != nil {
		return nil, err
	}

	now := e.now()
	sent := make(map[string]bool)
	for i := 1; i < len(rows); i++ {
		serial := strings.TrimSpace(cellAt(rows, i, 0))
		when, ok := model.ParseDate(cellAt(rows, i, 1))
		if serial == "" || !ok {
			continue
		}
		if model.SameMonth(when, now) {
			sent[serial] = true
		}
	}
	return sent, nil
}

// buildMessage assembles the combined HTML body. Only non-empty buckets
// appear; a spacer separates them when both are present. An empty string
// means there is nothing to send.
func buildMessage(oneMonth, threeMonths []model.WarrantyRecord) string {
	var b strings.Builder
	if len(oneMonth) > 0 {
		b.WriteString("<p>La garantía de las siguientes notebooks vence en 1 mes:</p>")
		b.WriteString(buildTable(oneMonth))
	}
	if len(threeMonths) > 0 {
		if b.Len() > 0 {
			b.WriteString("<br><br>")
		}
		b.WriteString("<p>La garantía de las siguientes notebooks vence en 3 meses:</p>")
		b.WriteString(buildTable(threeMonths))
	}
	return b.String()
}

func buildTable(records []model.WarrantyRecord) string {
	const th = `<th style="padding: 8px; text-align: left; background-color: #f2f2f2;">`
	const td = `<td style="padding: 8px;">`

	var b strings.Builder
	b.WriteString(`<table border="1" style="border-collapse: collapse; width: 100%;">`)
	b.WriteString("<tr>")
	for _, h := range []string{"Nombre del Usuario", "Serial", "Vencimiento Garantía", "Extensión de Garantía", "Más Información"} {
		b.WriteString(th + h + "</th>")
	}
	b.WriteString("</tr>")

	for _, rec := range records {
		b.WriteString("<tr>")
		b.WriteString(td + rec.UserName + "</td>")
		b.WriteString(td + rec.SerialNumber + "</td>")
		b.WriteString(td + model.FormatMonthYear(rec.ExpirationDate) + "</td>")
		ext := ""
		if !rec.ExtensionDate.IsZero() {
			ext = model.FormatMonthYear(rec.ExtensionDate)
		}
		b.WriteString(td + ext + "</td>")
		b.WriteString(td + `<a href="` + rec.InfoURL + `" style="background-color: #0000ff; color: white; padding: 5px 10px; text-align: center; text-decoration: none; display: inline-block;">Más información</a></td>`)
		b.WriteString("</tr>")
	}

	b.WriteString("</table>")
	return b.String()
}
