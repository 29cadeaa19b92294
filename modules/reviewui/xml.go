// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"context"
	"slices"

	"code.gitea.io/filepreview/modules/highlight"
	"code.gitea.io/filepreview/modules/xmlpretty"
)

// XMLReviewUI shows XML attachments prettified and highlighted
type XMLReviewUI struct {
	highlighter   *highlight.Highlighter
	maxDepth      int
	detectCharset bool
}

var _ ReviewUI = (*XMLReviewUI)(nil)

// NewXMLReviewUI creates the XML review UI
func NewXMLReviewUI(h *highlight.Highlighter, maxDepth int, detectCharset bool) *XMLReviewUI {
	return &XMLReviewUI{highlighter: h, maxDepth: maxDepth, detectCharset: detectCharset}
}

func (ui *XMLReviewUI) Name() string {
	return "XML"
}

func (ui *XMLReviewUI) SupportedMimetypes() []string {
	return []string{"application/xml", "text/xml"}
}

func (ui *XMLReviewUI) SourceLexer(string) string {
	return xmlpretty.LexerName
}

// Render prettifies content and returns one <pre> fragment per non-blank line
func (ui *XMLReviewUI) Render(ctx context.Context, content []byte, opts RenderOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html, err := xmlpretty.RenderAsHTML(ui.highlighter, content, xmlpretty.Options{
		KeepTextOnSameLine: opts.KeepTextOnSameLine,
		MaxDepth:           ui.maxDepth,
		DetectCharset:      ui.detectCharset,
	})
	if err != nil {
		return nil, err
	}
	lines := slices.Collect(xmlpretty.PreLines(html))
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
