// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBindings(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `
version: 1
bindings:
  - pattern: "*.bpmn"
    review_ui: XML
`,
		},
		{
			name:    "wrong version",
			yaml:    "version: 2\nbindings: []\n",
			wantErr: "unsupported version 2",
		},
		{
			name:    "missing review ui",
			yaml:    "version: 1\nbindings:\n  - pattern: \"*.xml\"\n",
			wantErr: "review_ui is required",
		},
		{
			name:    "missing selector",
			yaml:    "version: 1\nbindings:\n  - review_ui: XML\n",
			wantErr: "pattern or mimetype is required",
		},
		{
			name:    "bad pattern",
			yaml:    "version: 1\nbindings:\n  - pattern: \"[x\"\n    review_ui: XML\n",
			wantErr: "invalid pattern",
		},
		{
			name:    "unknown field",
			yaml:    "version: 1\nbindings:\n  - pattern: \"*.xml\"\n    review_ui: XML\n    entry: index.html\n",
			wantErr: "invalid bindings",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseBindings([]byte(tc.yaml))
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, b.Bindings, 1)
			assert.Equal(t, "XML", b.Bindings[0].ReviewUI)
		})
	}
}

func TestBindingMatch(t *testing.T) {
	base := Binding{Pattern: "*-register.xml"}
	assert.True(t, base.Match("registers/vdvc-register.xml", ""))
	assert.False(t, base.Match("registers/vdvc.xml", ""))

	withDir := Binding{Pattern: "registers/*.xml"}
	assert.True(t, withDir.Match("registers/a.xml", ""))
	assert.False(t, withDir.Match("a.xml", ""))

	byMime := Binding{MimeType: "Application/Vnd.Example+XML"}
	assert.True(t, byMime.Match("a.bin", "application/vnd.example+xml; charset=utf-8"))
	assert.False(t, byMime.Match("a.bin", "application/xml"))

	var nilBindings *Bindings
	assert.Empty(t, nilBindings.Lookup("a.xml", ""))
}

func TestLoadBindingsFile(t *testing.T) {
	b, err := LoadBindingsFile("")
	require.NoError(t, err)
	assert.Nil(t, b)

	dir := t.TempDir()
	filename := filepath.Join(dir, "bindings.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("version: 1\nbindings:\n  - pattern: \"*.dmn\"\n    review_ui: XML\n"), 0o644))
	b, err = LoadBindingsFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "XML", b.Lookup("decision.dmn", ""))

	_, err = LoadBindingsFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	large := filepath.Join(dir, "large.yaml")
	require.NoError(t, os.WriteFile(large, []byte("# "+strings.Repeat("x", int(maxBindingsSize))), 0o644))
	_, err = LoadBindingsFile(large)
	assert.ErrorContains(t, err, "exceeds max size")
}
