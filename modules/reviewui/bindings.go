// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxBindingsSize int64 = 64 * 1024 // 64 KB

// Bindings maps attachments to review UIs by filename pattern or mimetype
type Bindings struct {
	Version  int       `yaml:"version"`
	Bindings []Binding `yaml:"bindings"`
}

// Binding selects the review UI named ReviewUI for matching attachments.
type Binding struct {
	// Pattern is a glob (Go path.Match semantics). Patterns without a slash
	// match the base name, others the full path.
	// Examples:
	//   "*.bpmn"
	//   "notebooks/*.json"
	Pattern  string `yaml:"pattern"`
	MimeType string `yaml:"mimetype"`
	ReviewUI string `yaml:"review_ui"`
}

// LoadBindingsFile reads a bindings file. An empty filename yields no bindings.
func LoadBindingsFile(filename string) (*Bindings, error) {
	if filename == "" {
		return nil, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBindingsSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	if int64(len(data)) > maxBindingsSize {
		return nil, fmt.Errorf("%s exceeds max size (%d bytes)", filename, maxBindingsSize)
	}
	return ParseBindings(data)
}

// ParseBindings decodes and validates bindings YAML
func ParseBindings(data []byte) (*Bindings, error) {
	var b Bindings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("invalid bindings: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the version and every binding
func (b *Bindings) Validate() error {
	if b.Version != 1 {
		return fmt.Errorf("bindings: unsupported version %d (expected 1)", b.Version)
	}
	for i, binding := range b.Bindings {
		if strings.TrimSpace(binding.ReviewUI) == "" {
			return fmt.Errorf("bindings[%d]: review_ui is required", i)
		}
		if binding.Pattern == "" && binding.MimeType == "" {
			return fmt.Errorf("bindings[%d]: pattern or mimetype is required", i)
		}
		if binding.Pattern != "" {
			if _, err := path.Match(binding.Pattern, ""); err != nil {
				return fmt.Errorf("bindings[%d]: invalid pattern %q: %w", i, binding.Pattern, err)
			}
		}
	}
	return nil
}

// Match reports whether the binding applies to filename or mimeType
func (binding Binding) Match(filename, mimeType string) bool {
	if binding.MimeType != "" && normalizeMimeType(binding.MimeType) == normalizeMimeType(mimeType) {
		return true
	}
	if binding.Pattern == "" {
		return false
	}
	target := filename
	if !strings.Contains(binding.Pattern, "/") {
		target = path.Base(filename)
	}
	matched, _ := path.Match(binding.Pattern, target)
	return matched
}

// Lookup returns the review UI name bound to the attachment, or ""
func (b *Bindings) Lookup(filename, mimeType string) string {
	if b == nil {
		return ""
	}
	for _, binding := range b.Bindings {
		if binding.Match(filename, mimeType) {
			return binding.ReviewUI
		}
	}
	return ""
}
