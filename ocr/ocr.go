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

// Package ocr is the client for the external text-extraction service used
// by signed-image ingestion. The service itself is a collaborator, not
// reimplemented here.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"

	"github.com/pkg/errors"

	"github.com/entregahq/entrega/internal/request"
)

// Extractor turns an image blob into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// HTTPExtractor posts images to an OCR HTTP API and returns the extracted
// text from its JSON response.
type HTTPExtractor struct {
	url    string
	apiKey string
}

// NewHTTPExtractor builds an HTTPExtractor for the given endpoint.
func NewHTTPExtractor(url, apiKey string) *HTTPExtractor {
	return &HTTPExtractor{url: url, apiKey: apiKey}
}

func (e *HTTPExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	payload := map[string]string{
		"image":     base64.StdEncoding.EncodeToString(image),
		"mime_type": mimeType,
	}
	body, err := request.ToJsonReq(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", err
	}
	if e.apiKey != "" {
		req.Header.Set("X-Api-Key", e.apiKey)
	}

	var resp struct {
		Text string `json:"text"`
	}
	if _, err := request.Call(req, &resp); err != nil {
		return "", errors.Wrap(err, "extracting text")
	}
	return resp.Text, nil
}
