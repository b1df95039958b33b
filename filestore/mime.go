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

package filestore

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// detectMIME resolves a file's MIME type by extension first, falling back
// to sniffing the first 512 bytes of content when the extension is unknown.
func detectMIME(path string) string {
	if mimeType := detectByExtension(path); mimeType != "" {
		return mimeType
	}
	return detectByContent(path)
}

// detectByExtension detects the MIME type by the file extension.
func detectByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return mime.TypeByExtension(ext)
}

// detectByContent detects the MIME type by sniffing the file header.
func detectByContent(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(header[:n])
}
