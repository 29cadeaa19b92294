// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"encoding/base64"
	"fmt"
	"html"
	"slices"
	"strings"

	"code.gitea.io/filepreview/modules/highlight"
	"code.gitea.io/filepreview/modules/json"
	"code.gitea.io/filepreview/modules/markup/markdown"
	"code.gitea.io/filepreview/modules/templates"
)

const cellIndicatorFormat = `<div style="text-align: center">Cell %d (%s)</div>`

// mimeTypePriority orders output representations; anything unlisted comes after
// these and text/plain comes last.
var mimeTypePriority = []string{
	"text/html",
	"text/markdown",
	"image/svg+xml",
	"image/png",
	"image/jpeg",
	"image/gif",
	"application/json",
	"text/latex",
}

// Renderer renders notebooks to HTML fragments
type Renderer struct {
	highlighter     *highlight.Highlighter
	markdown        *markdown.Renderer
	defaultLanguage string
}

// NewRenderer creates a Renderer. defaultLanguage is used for code cells of
// notebooks that do not name their kernel language.
func NewRenderer(h *highlight.Highlighter, md *markdown.Renderer, defaultLanguage string) *Renderer {
	return &Renderer{highlighter: h, markdown: md, defaultLanguage: defaultLanguage}
}

// RenderNotebook renders every cell of nb, followed by its outputs and a separator
func RenderNotebook(nb *Notebook, r *Renderer) ([]string, error) {
	language := nb.Language()
	if language == "" {
		language = r.defaultLanguage
	}

	lines := make([]string, 0, len(nb.Cells)*3)
	for i := range nb.Cells {
		cell := &nb.Cells[i]
		lines = append(lines, fmt.Sprintf(cellIndicatorFormat, i+1, html.EscapeString(cell.CellType)))

		rendered, err := r.renderCell(cell, language)
		if err != nil {
			return nil, err
		}
		lines = append(lines, rendered...)

		for j := range cell.Outputs {
			rendered, err := r.renderOutput(&cell.Outputs[j])
			if err != nil {
				return nil, err
			}
			lines = append(lines, rendered...)
		}
		lines = append(lines, "<hr />")
	}
	return lines, nil
}

var bracketUnescaper = strings.NewReplacer(`\<`, "&lt;", `\>`, "&gt;")

func contentsInsideDiv(contents string, preserveWhitespace bool) string {
	if preserveWhitespace {
		return `<div class="cell-with-whitespace">` + contents + "</div>"
	}
	return "<div>" + contents + "</div>"
}

// ExecutionDetails returns the prompt shown before a cell or output
func ExecutionDetails(execType string, count *int) string {
	if count == nil || *count == 0 {
		return execType + " [ ]:"
	}
	return fmt.Sprintf("%s [%d]:", execType, *count)
}

func (r *Renderer) renderCell(cell *Cell, language string) ([]string, error) {
	switch cell.CellType {
	case CellTypeMarkdown:
		return r.renderMarkdownCell(cell)
	case CellTypeCode:
		return r.renderCodeCell(cell, language), nil
	case CellTypeRaw:
		return renderRawCell(cell), nil
	}
	return nil, ErrInvalidCell{CellType: cell.CellType}
}

func (r *Renderer) renderMarkdown(source string) (string, error) {
	rendered, err := r.markdown.RenderString(bracketUnescaper.Replace(source))
	if err != nil {
		return "", err
	}
	return Sanitizer().Sanitize(rendered), nil
}

func (r *Renderer) renderMarkdownCell(cell *Cell) ([]string, error) {
	content := make([]string, 0, len(cell.Source))
	for _, line := range cell.Source {
		rendered, err := r.renderMarkdown(line)
		if err != nil {
			return nil, err
		}
		content = append(content, contentsInsideDiv(rendered, false))
	}
	return content, nil
}

func (r *Renderer) renderCodeCell(cell *Cell, language string) []string {
	code := make([]string, 0, len(cell.Source)+1)
	code = append(code, ExecutionDetails("In", cell.ExecutionCount))
	for _, line := range cell.Source {
		highlighted := strings.Join(r.highlighter.Lines(language, line), "\n")
		code = append(code, `<div class="input-area">`+contentsInsideDiv(highlighted, true)+"</div>")
	}
	return code
}

func renderRawCell(cell *Cell) []string {
	content := make([]string, 0, len(cell.Source))
	for _, line := range cell.Source {
		content = append(content, contentsInsideDiv(html.EscapeString(line), false))
	}
	return content
}

func (r *Renderer) renderOutput(output *Output) ([]string, error) {
	rendered := []string{"<div>" + ExecutionDetails("Out", output.ExecutionCount) + "</div>"}

	switch output.OutputType {
	case OutputTypeExecuteResult, OutputTypeDisplayData:
		data, err := r.renderData(output.Data)
		if err != nil {
			return nil, err
		}
		return append(rendered, data), nil
	case OutputTypeStream:
		return append(rendered, contentsInsideDiv(html.EscapeString(output.Text.String()), true)), nil
	case OutputTypeError:
		return append(rendered, contentsInsideDiv(html.EscapeString(output.EValue), false)), nil
	}
	return nil, ErrInvalidOutput{OutputType: output.OutputType}
}

// SelectMimeType picks the representation of an output to render
func SelectMimeType(data map[string]json.RawMessage) string {
	for _, mimeType := range mimeTypePriority {
		if _, ok := data[mimeType]; ok {
			return mimeType
		}
	}
	others := make([]string, 0, len(data))
	for mimeType := range data {
		if mimeType != "text/plain" {
			others = append(others, mimeType)
		}
	}
	if len(others) > 0 {
		slices.Sort(others)
		return others[0]
	}
	return "text/plain"
}

func isJSONMimeType(mimeType string) bool {
	return mimeType == "application/json" || (strings.HasPrefix(mimeType, "application/") && strings.HasSuffix(mimeType, "+json"))
}

// dataValue decodes a mimebundle value. JSON mimetypes may hold any JSON value,
// which is returned indented.
func dataValue(mimeType string, raw json.RawMessage) (string, error) {
	var text MultilineString
	if err := json.Unmarshal(raw, &text); err == nil {
		return text.String(), nil
	} else if !isJSONMimeType(mimeType) {
		return "", ErrInvalidNotebook{Reason: fmt.Sprintf("%s output is not a string: %v", mimeType, err)}
	}
	return templates.NewJsonUtils().PrettyIndent(string(raw)), nil
}

func (r *Renderer) renderData(data map[string]json.RawMessage) (string, error) {
	if len(data) == 0 {
		return contentsInsideDiv("", false), nil
	}
	mimeType := SelectMimeType(data)
	value, err := dataValue(mimeType, data[mimeType])
	if err != nil {
		return "", err
	}

	switch {
	case mimeType == "image/svg+xml":
		encoded := base64.StdEncoding.EncodeToString([]byte(value))
		return fmt.Sprintf(`<img src="data:%s;base64, %s" alt="cell output" />`, mimeType, encoded), nil
	case strings.HasPrefix(mimeType, "image/"):
		encoded := strings.Join(strings.Fields(value), "")
		return fmt.Sprintf(`<img src="data:%s;base64, %s" alt="cell output" />`, html.EscapeString(mimeType), html.EscapeString(encoded)), nil
	case mimeType == "text/html":
		return contentsInsideDiv(Sanitizer().Sanitize(value), false), nil
	case mimeType == "text/markdown":
		rendered, err := r.renderMarkdown(value)
		if err != nil {
			return "", err
		}
		return contentsInsideDiv(rendered, false), nil
	case isJSONMimeType(mimeType):
		return contentsInsideDiv(html.EscapeString(value), true), nil
	}
	return contentsInsideDiv(html.EscapeString(value), false), nil
}
