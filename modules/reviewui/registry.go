// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"strings"

	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/typesniffer"

	"github.com/go-enry/go-enry/v2"
)

var previewTypeMimeTypes = map[string]string{
	typesniffer.PreviewTypeXML:   "application/xml",
	typesniffer.PreviewTypeIpynb: "application/ipynb+json",
}

var languageMimeTypes = map[string]string{
	"XML":              "application/xml",
	"Jupyter Notebook": "application/ipynb+json",
}

// Registry picks the review UI for an attachment
type Registry struct {
	uis      []ReviewUI
	bindings *Bindings
}

// NewRegistry creates a registry over uis. bindings may be nil.
func NewRegistry(bindings *Bindings, uis ...ReviewUI) *Registry {
	return &Registry{uis: uis, bindings: bindings}
}

// ReviewUIs returns the registered review UIs
func (r *Registry) ReviewUIs() []ReviewUI {
	return r.uis
}

// ByName returns the review UI with the given name, case-insensitively
func (r *Registry) ByName(name string) ReviewUI {
	for _, ui := range r.uis {
		if strings.EqualFold(ui.Name(), name) {
			return ui
		}
	}
	return nil
}

// ByMimeType returns the first review UI supporting mimeType
func (r *Registry) ByMimeType(mimeType string) ReviewUI {
	if mimeType == "" {
		return nil
	}
	for _, ui := range r.uis {
		if supports(ui, mimeType) {
			return ui
		}
	}
	return nil
}

// ForAttachment resolves the review UI by declared mimetype, then bindings, then
// the content head, then the filename. It returns nil when nothing supports it.
func (r *Registry) ForAttachment(att *Attachment, head []byte) ReviewUI {
	if ui := r.ByMimeType(att.MimeType); ui != nil {
		return ui
	}

	if name := r.bindings.Lookup(att.Filename, att.MimeType); name != "" {
		if ui := r.ByName(name); ui != nil {
			return ui
		}
		log.Warn("reviewui: binding for %s names unknown review UI %q", att.Filename, name)
	}

	if previewType, ok := typesniffer.DetectPreviewType(head); ok {
		if ui := r.ByMimeType(previewTypeMimeTypes[previewType]); ui != nil {
			return ui
		}
	}
	if previewType, ok := typesniffer.DetectByFilename(att.Filename); ok {
		if ui := r.ByMimeType(previewTypeMimeTypes[previewType]); ui != nil {
			return ui
		}
	}

	language := enry.GetLanguage(att.Filename, head)
	if language == "" {
		return nil
	}
	if mimeType, ok := languageMimeTypes[language]; ok {
		return r.ByMimeType(mimeType)
	}
	return r.ByMimeType(enry.GetMIMEType(att.Filename, language))
}
