// CLASSIFICATION: COMMUNITY
// Filename: mime.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"mime"
	"path"
	"strings"
)

// DefaultContentType is used when the extension is unknown.
const DefaultContentType = "application/octet-stream"

// Script and data types browsers expect from a development server; the
// platform tables disagree on these.
var contentTypes = map[string]string{
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".json": "application/json",
}

// ContentType infers the media type of name from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultContentType
}
