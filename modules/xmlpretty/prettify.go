// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import "strings"

// Options controls prettifying and rendering
type Options struct {
	// KeepTextOnSameLine keeps element text between its tags for the root's subtree
	KeepTextOnSameLine bool
	MaxDepth           int
	DetectCharset      bool
}

func (opts Options) parseOptions() ParseOptions {
	return ParseOptions{MaxDepth: opts.MaxDepth, DetectCharset: opts.DetectCharset}
}

// Prettify reformats an XML document with consistent nesting. The declaration,
// if any, is kept verbatim on the first line. Empty input yields "".
func Prettify(raw []byte, opts Options) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	doc, err := Parse(raw, opts.parseOptions())
	if err != nil {
		return "", err
	}
	return FormatDocument(doc, opts.KeepTextOnSameLine), nil
}

// FormatDocument formats a parsed document. Root-level siblings on the same side
// of the root are separated by a blank line.
func FormatDocument(doc *Document, keepTextOnSameLine bool) string {
	var sb strings.Builder
	if doc.Declaration != "" {
		sb.WriteString(doc.Declaration)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Join(SiblingsBeforeRoot(doc), "\n"))
	sb.WriteString(FormatElement(doc.Root, 0, keepTextOnSameLine))
	sb.WriteString(strings.Join(SiblingsAfterRoot(doc), "\n"))
	return sb.String()
}
