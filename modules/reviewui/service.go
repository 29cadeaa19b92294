// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"code.gitea.io/filepreview/modules/highlight"
	"code.gitea.io/filepreview/modules/jupyter"
	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/markup/markdown"
	"code.gitea.io/filepreview/modules/setting"
)

// Service bundles what a host needs to preview attachments
type Service struct {
	Highlighter *highlight.Highlighter
	Registry    *Registry
	Renderer    *Renderer
}

// NewServiceFromSettings builds the highlighter, the enabled review UIs and the
// renderer from the loaded settings.
func NewServiceFromSettings() (*Service, error) {
	h := highlight.New(highlight.Options{
		Style:       setting.Highlight.Style,
		ClassPrefix: setting.Highlight.ClassPrefix,
	})

	bindings, err := LoadBindingsFile(setting.Preview.BindingsFile)
	if err != nil {
		return nil, err
	}

	var uis []ReviewUI
	if setting.Preview.Enabled {
		uis = append(uis, NewXMLReviewUI(h, setting.Preview.MaxXMLDepth, setting.Preview.DetectCharset))
		if setting.Jupyter.Enabled {
			md := markdown.NewRenderer(markdown.Options{
				Style:       setting.Highlight.Style,
				ClassPrefix: setting.Highlight.ClassPrefix,
			})
			uis = append(uis, NewJupyterReviewUI(
				jupyter.NewRenderer(h, md, setting.Jupyter.DefaultLanguage),
				setting.Jupyter.ValidateSchema,
			))
		}
	} else {
		log.Info("reviewui: attachment previews are disabled")
	}

	renderer, err := NewRenderer(h, RendererOptions{
		MaxFileSize:   setting.Preview.MaxFileSize,
		CacheSize:     setting.Preview.CacheSize,
		DetectCharset: setting.Preview.DetectCharset,
	})
	if err != nil {
		return nil, err
	}

	return &Service{
		Highlighter: h,
		Registry:    NewRegistry(bindings, uis...),
		Renderer:    renderer,
	}, nil
}
