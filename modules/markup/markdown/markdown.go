// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markdown

import (
	"bytes"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures a Renderer
type Options struct {
	// Style and ClassPrefix must match the highlighter serving the stylesheet
	Style       string
	ClassPrefix string
}

// Renderer converts GitHub flavored markdown to HTML. Raw HTML is passed through,
// callers are expected to sanitize the output.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer
func NewRenderer(opts Options) *Renderer {
	formatOptions := []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(false),
	}
	if opts.ClassPrefix != "" {
		formatOptions = append(formatOptions, chromahtml.ClassPrefix(opts.ClassPrefix))
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(opts.Style),
					highlighting.WithFormatOptions(formatOptions...),
				),
			),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// RenderString converts source to HTML
func (r *Renderer) RenderString(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
