// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"regexp"
	"strings"
)

// DefaultEncoding is assumed when a document declares no encoding
const DefaultEncoding = "ASCII"

var encodingPattern = regexp.MustCompile(`\bencoding\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// GetDeclaration returns the XML declaration the document starts with, up to and
// including the first "?>". It returns "" when there is none.
func GetDeclaration(raw string) string {
	if !strings.HasPrefix(raw, "<?xml") || len(raw) < 6 {
		return ""
	}
	// "<?xml-stylesheet" and friends are processing instructions
	switch raw[5] {
	case ' ', '\t', '\r', '\n', '?':
	default:
		return ""
	}
	end := strings.Index(raw, "?>")
	if end < 0 {
		return ""
	}
	return raw[:end+2]
}

// GetEncoding returns the value of the encoding pseudo-attribute of a declaration,
// or DefaultEncoding.
func GetEncoding(declaration string) string {
	m := encodingPattern.FindStringSubmatch(declaration)
	if m == nil {
		return DefaultEncoding
	}
	if m[1] != "" {
		return m[1]
	}
	if m[2] != "" {
		return m[2]
	}
	return DefaultEncoding
}
