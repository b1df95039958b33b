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

package notification

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entregahq/entrega/config"
	"github.com/entregahq/entrega/internal/request"
)

func TestNotifyErrorSendsSlackMessage(t *testing.T) {
	httpmock.ActivateNonDefault(request.HTTPClient)
	defer httpmock.DeactivateAndReset()

	const webhook = "https://hooks.slack.com/services/T000/B000/XXX"
	config.MockConfig(&config.Configuration{
		Notification: config.Notification{Slack: config.SlackWebhook{WebhookUrl: webhook}},
	})

	var body string
	httpmock.RegisterResponder("POST", webhook,
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			body = string(raw)
			return httpmock.NewStringResponse(http.StatusOK, `{"ok": true}`), nil
		})

	NotifyError(errors.New("no se pudo abrir el workbook"))

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Contains(t, body, "Error From Entrega")
	assert.Contains(t, body, "no se pudo abrir el workbook")
}

func TestNotifyErrorWithoutWebhookStaysLocal(t *testing.T) {
	httpmock.ActivateNonDefault(request.HTTPClient)
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{})

	NotifyError(errors.New("falló la generación"))

	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
