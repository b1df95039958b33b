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

// Package invgate is the client for the helpdesk ticketing API that feeds
// intake reconciliation. Fetching is two-staged: a saved view yields
// request IDs, then one batched call yields the full ticket bodies.
package invgate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/entregahq/entrega/internal/request"
)

// Incident is one helpdesk ticket. The description is an HTML fragment of
// label/value table rows; the title embeds a (dd/mm/yyyy) date.
type Incident struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client talks to the ticketing REST API using HTTP Basic credentials.
type Client struct {
	baseURL  string
	user     string
	password string
}

// NewClient builds a Client for the given API base URL, which is expected
// to end in /api/v1/.
func NewClient(baseURL, user, password string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{baseURL: baseURL, user: user, password: password}
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+request.BasicAuth(c.user, c.password))
	if _, err := request.Call(req, out); err != nil {
		return errors.Wrapf(err, "calling %s", rawURL)
	}
	return nil
}

// ViewRequestIDs fetches the request IDs of a saved incident view.
func (c *Client) ViewRequestIDs(ctx context.Context, viewID int) ([]int, error) {
	var resp struct {
		RequestIDs []int `json:"requestIds"`
	}
	u := fmt.Sprintf("%sincidents.by.view?view_id=%d", c.baseURL, viewID)
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.RequestIDs, nil
}

// IncidentsByIDs fetches the full bodies of the given tickets in a single
// batched call. The response maps ticket ID to incident.
func (c *Client) IncidentsByIDs(ctx context.Context, ids []int) (map[string]Incident, error) {
	if len(ids) == 0 {
		return map[string]Incident{}, nil
	}
	params := make([]string, len(ids))
	for i, id := range ids {
		params[i] = fmt.Sprintf("ids[]=%d", id)
	}
	u := fmt.Sprintf("%sincidents?%s", c.baseURL, strings.Join(params, "&"))
	incidents := map[string]Incident{}
	if err := c.get(ctx, u, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// TicketURL returns the human-facing view URL for a ticket, derived from
// the API base by stripping the /api/v1/ suffix.
func (c *Client) TicketURL(id string) string {
	base := strings.TrimSuffix(c.baseURL, "/api/v1/")
	return fmt.Sprintf("%s/requests/show/index/id/%s", base, url.PathEscape(id))
}
