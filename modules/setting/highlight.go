// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Highlight settings
var Highlight = struct {
	Style       string
	ClassPrefix string
}{
	Style: "github",
}

func loadHighlightFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("highlight")
	Highlight.Style = sec.Key("STYLE").MustString("github")
	Highlight.ClassPrefix = sec.Key("CLASS_PREFIX").MustString("")
}
