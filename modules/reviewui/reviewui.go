// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"context"
	"io"
	"strings"

	"code.gitea.io/filepreview/modules/typesniffer"
	"code.gitea.io/filepreview/modules/util"
)

// Mode selects how an attachment is shown
type Mode string

const (
	// ModeRendered shows the review UI's rendering
	ModeRendered Mode = "rendered"
	// ModeSource shows the file highlighted as source, one line per fragment
	ModeSource Mode = "source"
)

// ParseMode maps a query or flag value to a Mode. Empty means rendered.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRendered:
		return ModeRendered, nil
	case ModeSource:
		return ModeSource, nil
	}
	return "", util.NewInvalidArgumentErrorf("unknown view mode %q", s)
}

// RenderOptions are the per-request rendering options
type RenderOptions struct {
	KeepTextOnSameLine bool
	Mode               Mode
}

// ReviewUI renders one family of file attachments to HTML fragments
type ReviewUI interface {
	// Name is the display name used in messages and bindings
	Name() string
	SupportedMimetypes() []string
	// SourceLexer names the highlighter lexer for the source view of filename
	SourceLexer(filename string) string
	Render(ctx context.Context, content []byte, opts RenderOptions) ([]string, error)
}

// Attachment is a stored file that can be previewed
type Attachment struct {
	ID       int64
	Filename string
	MimeType string
	Size     int64
	Opener   func(ctx context.Context) (io.ReadCloser, error)
}

// Open returns a reader for the attachment content. Callers must close it.
func (a *Attachment) Open(ctx context.Context) (io.ReadCloser, error) {
	if a.Opener == nil {
		return nil, util.NewNotExistErrorf("attachment %d has no content", a.ID)
	}
	return a.Opener(ctx)
}

// ReadHead returns the first bytes of the attachment for content sniffing
func ReadHead(ctx context.Context, att *Attachment) ([]byte, error) {
	rd, err := att.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(io.LimitReader(rd, typesniffer.SniffLimit))
}

func supports(ui ReviewUI, mimeType string) bool {
	mimeType = normalizeMimeType(mimeType)
	for _, supported := range ui.SupportedMimetypes() {
		if supported == mimeType {
			return true
		}
	}
	return false
}

// normalizeMimeType drops parameters such as "; charset=utf-8"
func normalizeMimeType(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}
