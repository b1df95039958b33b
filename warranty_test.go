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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/model"
)

func TestMonthsRemainingBoundaries(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, model.MonthsRemaining(today, time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, model.MonthsRemaining(today, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, model.MonthsRemaining(today, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, model.MonthsRemaining(today, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, model.MonthsRemaining(today, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)))
}

// addWarrantyRow appends a warranty row; expiry and extension use
// dd/mm/yyyy and the serial cell carries the info hyperlink.
func (env *testEnv) addWarrantyRow(t *testing.T, user, serial, expiry, extension, url string) {
	t.Helper()
	conf, err := config.Fetch()
	require.NoError(t, err)
	sheet := conf.Sheets.Garantias

	row, err := env.rows.AppendRow(sheet, []string{user, serial, expiry, extension})
	require.NoError(t, err)
	if url != "" {
		require.NoError(t, env.rows.WriteLink(sheet, row, warrantyColSerial+1, url, serial))
	}
}

func TestNotifyWarrantiesBuckets(t *testing.T) {
	env := newTestEnv(t)

	// testNow is 15/06/2024: July is the 1-month bucket, September the
	// 3-month bucket; August (2) and October (4) never notify.
	env.addWarrantyRow(t, "Ana Gómez", "SN-1", "31/07/2024", "31/07/2025", "https://vendor.example.com/sn-1")
	env.addWarrantyRow(t, "Juan Pérez", "SN-3", "01/09/2024", "", "https://vendor.example.com/sn-3")
	env.addWarrantyRow(t, "Dos Meses", "SN-2", "01/08/2024", "", "")
	env.addWarrantyRow(t, "Cuatro Meses", "SN-4", "01/10/2024", "", "")

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Equal(t, 1, env.mailer.sends)
	assert.Equal(t, "it@example.com", env.mailer.to)
	assert.Contains(t, env.mailer.body, "vence en 1 mes")
	assert.Contains(t, env.mailer.body, "vence en 3 meses")
	assert.Contains(t, env.mailer.body, "<br><br>")
	assert.Contains(t, env.mailer.body, "SN-1")
	assert.Contains(t, env.mailer.body, "SN-3")
	assert.NotContains(t, env.mailer.body, "SN-2")
	assert.NotContains(t, env.mailer.body, "SN-4")

	// Dates render as Spanish month-year; the info link is a styled button.
	assert.Contains(t, env.mailer.body, "julio de 2024")
	assert.Contains(t, env.mailer.body, "julio de 2025")
	assert.Contains(t, env.mailer.body, `href="https://vendor.example.com/sn-1"`)
	assert.Contains(t, env.mailer.body, ">Más información</a>")
}

func TestNotifyWarrantiesNothingDue(t *testing.T) {
	env := newTestEnv(t)

	env.addWarrantyRow(t, "Dos Meses", "SN-2", "01/08/2024", "", "")

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, env.mailer.sends)
}

func TestNotifyWarrantiesSuppression(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)

	env.addWarrantyRow(t, "Ana Gómez", "SN-1", "31/07/2024", "", "")
	// Already notified this calendar month.
	_, err = env.rows.AppendRow(conf.Sheets.MailLog, []string{"SN-1", "02/06/2024"})
	require.NoError(t, err)

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, env.mailer.sends)
}

func TestNotifyWarrantiesLogAllowsNextMonth(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)

	env.addWarrantyRow(t, "Ana Gómez", "SN-1", "31/07/2024", "", "")
	// Notified last month; this month is due again.
	_, err = env.rows.AppendRow(conf.Sheets.MailLog, []string{"SN-1", "20/05/2024"})
	require.NoError(t, err)

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, env.mailer.sends)
}

func TestNotifyWarrantiesAppendsLog(t *testing.T) {
	env := newTestEnv(t)
	conf, err := config.Fetch()
	require.NoError(t, err)

	env.addWarrantyRow(t, "Ana Gómez", "SN-1", "31/07/2024", "", "")

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	rows, err := env.rows.ReadRows(conf.Sheets.MailLog)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SN-1", rows[1][0])
	assert.Equal(t, model.FormatDate(testNow), rows[1][1])

	// A second run the same month stays silent.
	n, err = env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, env.mailer.sends)
}

func TestNotifyWarrantiesOneMonthOnly(t *testing.T) {
	env := newTestEnv(t)

	env.addWarrantyRow(t, "Ana Gómez", "SN-1", "31/07/2024", "", "")

	n, err := env.e.NotifyWarranties(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	assert.Contains(t, env.mailer.body, "vence en 1 mes")
	assert.NotContains(t, env.mailer.body, "vence en 3 meses")
	assert.NotContains(t, env.mailer.body, "<br><br>")
}
