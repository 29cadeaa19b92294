// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"iter"
	"slices"
	"time"

	"code.gitea.io/filepreview/modules/charset"
	"code.gitea.io/filepreview/modules/highlight"
	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/util"
	"code.gitea.io/filepreview/modules/xmlpretty"

	"github.com/dustin/go-humanize"
	"github.com/go-enry/go-enry/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// RenderResult holds the fragments of a successful render or the failure
type RenderResult struct {
	Fragments []string
	Err       error
}

// RendererOptions configures a Renderer
type RendererOptions struct {
	// MaxFileSize limits the attachment size, 0 means unlimited
	MaxFileSize   int64
	CacheSize     int
	DetectCharset bool
}

// Renderer reads attachments and renders them with a review UI
type Renderer struct {
	highlighter *highlight.Highlighter
	opts        RendererOptions
	cache       *lru.Cache[string, []string]

	// concurrent renders of the same content share one result
	group singleflight.Group
}

// NewRenderer creates a Renderer. A CacheSize of 0 disables caching.
func NewRenderer(h *highlight.Highlighter, opts RendererOptions) (*Renderer, error) {
	r := &Renderer{highlighter: h, opts: opts}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, []string](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}
	return r, nil
}

// GenerateRender yields the rendered fragments of att. On failure it logs the
// error and yields a single escaped error message instead of partial output.
func (r *Renderer) GenerateRender(ctx context.Context, ui ReviewUI, att *Attachment, opts RenderOptions) iter.Seq[string] {
	return func(yield func(string) bool) {
		result := r.Render(ctx, ui, att, opts)
		if result.Err != nil {
			log.Error("Failed to render %s for file attachment %d: %v", ui.Name(), att.ID, result.Err)
			yield(html.EscapeString(fmt.Sprintf("Error while rendering %s content: %v", ui.Name(), result.Err)))
			return
		}
		for _, fragment := range result.Fragments {
			if !yield(fragment) {
				return
			}
		}
	}
}

// Render reads att and renders it with ui
func (r *Renderer) Render(ctx context.Context, ui ReviewUI, att *Attachment, opts RenderOptions) RenderResult {
	if opts.Mode == "" {
		opts.Mode = ModeRendered
	}

	content, err := r.readAttachment(ctx, att)
	if err != nil {
		renderTotal.WithLabelValues(ui.Name(), string(opts.Mode), "error").Inc()
		return RenderResult{Err: err}
	}

	key := cacheKey(ui, opts, content)
	if r.cache != nil {
		if fragments, ok := r.cache.Get(key); ok {
			cacheHitsTotal.Inc()
			renderTotal.WithLabelValues(ui.Name(), string(opts.Mode), "cached").Inc()
			return RenderResult{Fragments: slices.Clone(fragments)}
		}
	}

	start := time.Now()
	// the result is shared with other callers, so one caller giving up must not fail it
	v, err, _ := r.group.Do(key, func() (any, error) {
		fragments, err := r.render(context.WithoutCancel(ctx), ui, att, content, opts)
		if err == nil && r.cache != nil {
			r.cache.Add(key, fragments)
		}
		return fragments, err
	})
	renderDuration.WithLabelValues(ui.Name(), string(opts.Mode)).Observe(time.Since(start).Seconds())
	if err != nil {
		renderTotal.WithLabelValues(ui.Name(), string(opts.Mode), "error").Inc()
		return RenderResult{Err: err}
	}

	renderTotal.WithLabelValues(ui.Name(), string(opts.Mode), "ok").Inc()
	return RenderResult{Fragments: slices.Clone(v.([]string))}
}

func (r *Renderer) render(ctx context.Context, ui ReviewUI, att *Attachment, content []byte, opts RenderOptions) ([]string, error) {
	switch opts.Mode {
	case ModeSource:
		return r.renderSource(ui, att, content)
	case ModeRendered:
		return ui.Render(ctx, content, opts)
	}
	return nil, util.NewInvalidArgumentErrorf("unknown view mode %q", opts.Mode)
}

func (r *Renderer) readAttachment(ctx context.Context, att *Attachment) ([]byte, error) {
	limit := r.opts.MaxFileSize
	if limit > 0 && att.Size > limit {
		return nil, tooLarge(att, att.Size, limit)
	}

	rd, err := att.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	var src io.Reader = rd
	if limit > 0 {
		src = io.LimitReader(rd, limit+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, tooLarge(att, int64(len(content)), limit)
	}
	return content, nil
}

func tooLarge(att *Attachment, size, limit int64) error {
	return util.NewContentTooLargeErrorf("%s is too large to preview (%s, limit %s)",
		att.Filename, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
}

// renderSource highlights the whole file, one <pre> per line with blank lines kept
func (r *Renderer) renderSource(ui ReviewUI, att *Attachment, content []byte) ([]string, error) {
	label := xmlpretty.GetEncoding(xmlpretty.GetDeclaration(string(content)))
	if label == xmlpretty.DefaultEncoding {
		label = ""
	}
	text, _, err := charset.ToUTF8(content, label, charset.ConvertOpts{Detect: r.opts.DetectCharset})
	if err != nil {
		return nil, err
	}

	lexer := ui.SourceLexer(att.Filename)
	if lexer == "" {
		lexer = enry.GetLanguage(att.Filename, text)
	}

	lines := r.highlighter.Lines(lexer, string(text))
	fragments := make([]string, 0, len(lines))
	for _, line := range lines {
		fragments = append(fragments, "<pre>"+line+"</pre>")
	}
	return fragments, nil
}

func cacheKey(ui ReviewUI, opts RenderOptions, content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%s:%s:%t:%s", ui.Name(), opts.Mode, opts.KeepTextOnSameLine, hex.EncodeToString(sum[:]))
}
