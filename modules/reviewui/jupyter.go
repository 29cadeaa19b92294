// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"context"

	"code.gitea.io/filepreview/modules/jupyter"
)

// JupyterReviewUI shows notebooks cell by cell
type JupyterReviewUI struct {
	renderer *jupyter.Renderer
	validate bool
}

var _ ReviewUI = (*JupyterReviewUI)(nil)

// NewJupyterReviewUI creates the notebook review UI. When validate is set the
// notebook is checked against the nbformat schema before rendering.
func NewJupyterReviewUI(r *jupyter.Renderer, validate bool) *JupyterReviewUI {
	return &JupyterReviewUI{renderer: r, validate: validate}
}

func (ui *JupyterReviewUI) Name() string {
	return "Jupyter Notebook"
}

func (ui *JupyterReviewUI) SupportedMimetypes() []string {
	return []string{"application/ipynb+json", "application/x-ipynb+json"}
}

func (ui *JupyterReviewUI) SourceLexer(string) string {
	return "json"
}

func (ui *JupyterReviewUI) Render(ctx context.Context, content []byte, _ RenderOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nb, err := jupyter.ParseNotebook(content, ui.validate)
	if err != nil {
		return nil, err
	}
	return jupyter.RenderNotebook(nb, ui.renderer)
}
