// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"strings"
	"testing"

	"code.gitea.io/filepreview/modules/highlight"
	"code.gitea.io/filepreview/modules/json"
	"code.gitea.io/filepreview/modules/markup/markdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() *Renderer {
	return NewRenderer(
		highlight.New(highlight.Options{Style: "github"}),
		markdown.NewRenderer(markdown.Options{Style: "github"}),
		"python",
	)
}

func notebookJSON(cells string) []byte {
	return []byte(`{
		"nbformat": 4,
		"nbformat_minor": 0,
		"metadata": {"kernelspec": {"name": "python3", "display_name": "Python 3"}},
		"cells": [` + cells + `]
	}`)
}

func renderJSON(t *testing.T, content []byte) []string {
	t.Helper()
	nb, err := ParseNotebook(content, true)
	require.NoError(t, err)
	lines, err := RenderNotebook(nb, newTestRenderer())
	require.NoError(t, err)
	return lines
}

func intPtr(i int) *int {
	return &i
}

func TestRenderNotebookEmpty(t *testing.T) {
	assert.Empty(t, renderJSON(t, notebookJSON("")))
}

func TestRenderNotebookMarkdown(t *testing.T) {
	lines := renderJSON(t, notebookJSON(`{
		"cell_type": "markdown",
		"metadata": {"id": "ZN7m0ivNclYs"},
		"source": ["# Jupyter markdown test\n"]
	}`))
	assert.Equal(t, []string{
		`<div style="text-align: center">Cell 1 (markdown)</div>`,
		"<div><h1>Jupyter markdown test</h1></div>",
		"<hr />",
	}, lines)
}

func TestRenderNotebookMultipleCells(t *testing.T) {
	lines := renderJSON(t, notebookJSON(`
		{"cell_type": "markdown", "metadata": {}, "source": ["# First cell\n"]},
		{"cell_type": "markdown", "metadata": {}, "source": "# Second cell"}
	`))
	assert.Equal(t, []string{
		`<div style="text-align: center">Cell 1 (markdown)</div>`,
		"<div><h1>First cell</h1></div>",
		"<hr />",
		`<div style="text-align: center">Cell 2 (markdown)</div>`,
		"<div><h1>Second cell</h1></div>",
		"<hr />",
	}, lines)
}

func TestRenderNotebookAngleBrackets(t *testing.T) {
	lines := renderJSON(t, notebookJSON(`{
		"cell_type": "markdown", "metadata": {}, "source": ["* \\<array\\>.tolist()"]
	}`))
	require.Len(t, lines, 3)
	assert.Equal(t, "<div><ul>\n<li>&lt;array&gt;.tolist()</li>\n</ul></div>", lines[1])
}

func TestRenderNotebookSanitizesMarkdown(t *testing.T) {
	lines := renderJSON(t, notebookJSON(`{
		"cell_type": "markdown", "metadata": {}, "source": ["<script>alert(1)</script><b onclick=\"x()\">bold</b>"]
	}`))
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[1], "<script")
	assert.NotContains(t, lines[1], "onclick")
	assert.Contains(t, lines[1], "<b>bold</b>")
}

func TestRenderNotebookCode(t *testing.T) {
	lines := renderJSON(t, notebookJSON(`{
		"cell_type": "code",
		"metadata": {"id": "tuhrMYoWxDYc"},
		"source": ["myint = 7\n", "print(myint)\n"],
		"execution_count": 24,
		"outputs": []
	}`))
	require.Len(t, lines, 5)
	assert.Equal(t, `<div style="text-align: center">Cell 1 (code)</div>`, lines[0])
	assert.Equal(t, "In [24]:", lines[1])
	for _, line := range lines[2:4] {
		assert.True(t, strings.HasPrefix(line, `<div class="input-area"><div class="cell-with-whitespace">`), line)
		assert.True(t, strings.HasSuffix(line, "</div></div>"), line)
		assert.NotContains(t, line, "\n")
	}
	assert.Contains(t, lines[2], `<span class="n">myint</span>`)
	assert.Contains(t, lines[2], `<span class="mi">7</span>`)
	assert.Contains(t, lines[3], "print")
	assert.Equal(t, "<hr />", lines[4])
}

func displayDataCell(data string) string {
	return `{
		"cell_type": "code",
		"metadata": {"id": "tuhrMYoWxDYc"},
		"source": [],
		"execution_count": 0,
		"outputs": [{"output_type": "display_data", "data": ` + data + `, "metadata": {"tags": []}}]
	}`
}

func TestRenderNotebookImageOutput(t *testing.T) {
	lines := renderJSON(t, notebookJSON(displayDataCell(`{"image/png": "iawejkiawjeiaiwe\n"}`)))
	assert.Equal(t, []string{
		`<div style="text-align: center">Cell 1 (code)</div>`,
		"In [ ]:",
		"<div>Out [ ]:</div>",
		`<img src="data:image/png;base64, iawejkiawjeiaiwe" alt="cell output" />`,
		"<hr />",
	}, lines)
}

func TestRenderNotebookTextOutput(t *testing.T) {
	lines := renderJSON(t, notebookJSON(displayDataCell(`{"text/plain": ["first output line\n", "second output line\n"]}`)))
	require.Len(t, lines, 5)
	assert.Equal(t, "<div>first output line\nsecond output line\n</div>", lines[3])
}

func TestRenderNotebookJSONOutput(t *testing.T) {
	lines := renderJSON(t, notebookJSON(displayDataCell(`{"application/json": {"a": [1, 2]}, "text/plain": "ignored"}`)))
	require.Len(t, lines, 5)
	assert.Equal(t, "<div class=\"cell-with-whitespace\">{\n  &#34;a&#34;: [\n    1,\n    2\n  ]\n}</div>", lines[3])
}

func TestRenderNotebookHTMLOutput(t *testing.T) {
	lines := renderJSON(t, notebookJSON(displayDataCell(`{"text/html": ["<table><tr><td>1</td></tr></table>", "<script>x()</script>"], "text/plain": "t"}`)))
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "<td>1</td>")
	assert.NotContains(t, lines[3], "script")
}

func TestRenderNotebookSVGOutput(t *testing.T) {
	lines := renderJSON(t, notebookJSON(displayDataCell(`{"image/svg+xml": "<svg/>"}`)))
	require.Len(t, lines, 5)
	assert.Equal(t, `<img src="data:image/svg+xml;base64, PHN2Zy8+" alt="cell output" />`, lines[3])
}

func TestRenderNotebookInvalidCell(t *testing.T) {
	nb := &Notebook{Cells: []Cell{{CellType: "bogus"}}}
	_, err := RenderNotebook(nb, newTestRenderer())
	require.Error(t, err)
	assert.True(t, IsErrInvalidCell(err))
	assert.Equal(t, "bogus is not a valid cell type", err.Error())
}

func TestRenderNotebookInvalidOutput(t *testing.T) {
	nb := &Notebook{Cells: []Cell{{CellType: CellTypeCode, Outputs: []Output{{OutputType: "bogus"}}}}}
	_, err := RenderNotebook(nb, newTestRenderer())
	require.Error(t, err)
	assert.True(t, IsErrInvalidOutput(err))
}

func TestRenderNotebookRawCell(t *testing.T) {
	nb := &Notebook{Cells: []Cell{{CellType: CellTypeRaw, Source: MultilineString{"a < b\n"}}}}
	lines, err := RenderNotebook(nb, newTestRenderer())
	require.NoError(t, err)
	assert.Equal(t, "<div>a &lt; b\n</div>", lines[1])
}

func TestRenderOutput(t *testing.T) {
	r := newTestRenderer()
	cases := []struct {
		name     string
		output   Output
		expected []string
	}{
		{
			name:     "display data",
			output:   Output{OutputType: OutputTypeDisplayData, Data: map[string]json.RawMessage{"text/plain": json.RawMessage(`["test"]`)}},
			expected: []string{"<div>Out [ ]:</div>", "<div>test</div>"},
		},
		{
			name:     "execute result",
			output:   Output{OutputType: OutputTypeExecuteResult, ExecutionCount: intPtr(3), Data: map[string]json.RawMessage{"text/plain": json.RawMessage(`"test"`)}},
			expected: []string{"<div>Out [3]:</div>", "<div>test</div>"},
		},
		{
			name:     "stream",
			output:   Output{OutputType: OutputTypeStream, Text: MultilineString{"test"}},
			expected: []string{"<div>Out [ ]:</div>", `<div class="cell-with-whitespace">test</div>`},
		},
		{
			name:     "error",
			output:   Output{OutputType: OutputTypeError, EValue: "error message"},
			expected: []string{"<div>Out [ ]:</div>", "<div>error message</div>"},
		},
		{
			name:     "escaped text",
			output:   Output{OutputType: OutputTypeDisplayData, Data: map[string]json.RawMessage{"text/plain": json.RawMessage(`"<x> & y"`)}},
			expected: []string{"<div>Out [ ]:</div>", "<div>&lt;x&gt; &amp; y</div>"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := r.renderOutput(&c.output)
			require.NoError(t, err)
			assert.Equal(t, c.expected, out)
		})
	}
}

func TestExecutionDetails(t *testing.T) {
	assert.Equal(t, "In [ ]:", ExecutionDetails("In", nil))
	assert.Equal(t, "In [ ]:", ExecutionDetails("In", intPtr(0)))
	assert.Equal(t, "In [99]:", ExecutionDetails("In", intPtr(99)))
}

func TestSelectMimeType(t *testing.T) {
	assert.Equal(t, "text/markdown", SelectMimeType(map[string]json.RawMessage{
		"text/plain":    json.RawMessage(`"first"`),
		"text/markdown": json.RawMessage(`"second"`),
	}))
	assert.Equal(t, "application/x-custom", SelectMimeType(map[string]json.RawMessage{
		"text/plain":           nil,
		"application/x-custom": nil,
	}))
	assert.Equal(t, "text/plain", SelectMimeType(map[string]json.RawMessage{"text/plain": nil}))
}

func TestMultilineString(t *testing.T) {
	var s MultilineString
	require.NoError(t, json.Unmarshal([]byte(`"line1\nline2"`), &s))
	assert.Equal(t, MultilineString{"line1\n", "line2"}, s)
	assert.Equal(t, "line1\nline2", s.String())

	require.NoError(t, json.Unmarshal([]byte(`["line1", "line2"]`), &s))
	assert.Equal(t, "line1line2", s.String())

	assert.Error(t, json.Unmarshal([]byte(`5`), &s))
}

func TestNotebookLanguage(t *testing.T) {
	nb, err := ParseNotebook([]byte(`{
		"nbformat": 4, "nbformat_minor": 5, "cells": [],
		"metadata": {
			"kernelspec": {"name": "ir", "display_name": "R", "language": "R"},
			"language_info": {"name": "r"}
		}
	}`), true)
	require.NoError(t, err)
	assert.Equal(t, "r", nb.Language())

	nb.Metadata.LanguageInfo = nil
	assert.Equal(t, "R", nb.Language())

	nb.Metadata.KernelSpec = nil
	assert.Empty(t, nb.Language())
}

func TestValidateNotebook(t *testing.T) {
	assert.NoError(t, ValidateNotebook(notebookJSON("")))

	cases := map[string]string{
		"not json":          `{"cells": [`,
		"missing cells":     `{"nbformat": 4, "nbformat_minor": 0, "metadata": {}}`,
		"old format":        `{"nbformat": 3, "nbformat_minor": 0, "metadata": {}, "cells": []}`,
		"unknown cell type": string(notebookJSON(`{"cell_type": "bogus", "metadata": {}, "source": ""}`)),
		"code without outputs": string(notebookJSON(`{"cell_type": "code", "metadata": {}, "source": "", "execution_count": null}`)),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateNotebook([]byte(content))
			require.Error(t, err)
			assert.True(t, IsErrInvalidNotebook(err), "got %v", err)
		})
	}
}
