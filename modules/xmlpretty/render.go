// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"iter"
	"strings"

	"code.gitea.io/filepreview/modules/highlight"
)

// LexerName is the highlighter lexer used for XML
const LexerName = "xml"

// RenderAsHTML prettifies raw and highlights the result as XML. Content is
// entity-escaped; markup comes only from the highlighter.
func RenderAsHTML(h *highlight.Highlighter, raw []byte, opts Options) (string, error) {
	pretty, err := Prettify(raw, opts)
	if err != nil || pretty == "" {
		return "", err
	}
	return h.HTML(LexerName, pretty), nil
}

// PreLines yields each non-blank line of html wrapped in <pre>
func PreLines(html string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(html, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield("<pre>" + line + "</pre>") {
				return
			}
		}
	}
}
