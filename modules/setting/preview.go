// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Attachment preview settings
var Preview = struct {
	Enabled            bool
	MaxFileSize        int64
	MaxXMLDepth        int
	KeepTextOnSameLine bool
	DetectCharset      bool
	CacheSize          int
	BindingsFile       string
}{
	Enabled:            true,
	MaxFileSize:        5 * 1024 * 1024,
	MaxXMLDepth:        256,
	KeepTextOnSameLine: false,
	DetectCharset:      false,
	CacheSize:          128,
}

func loadPreviewFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("preview")
	Preview.Enabled = sec.Key("ENABLED").MustBool(true)
	Preview.MaxFileSize = sec.Key("MAX_FILE_SIZE").MustInt64(5 * 1024 * 1024)
	Preview.MaxXMLDepth = sec.Key("MAX_XML_DEPTH").MustInt(256)
	Preview.KeepTextOnSameLine = sec.Key("KEEP_TEXT_ON_SAME_LINE").MustBool(false)
	Preview.DetectCharset = sec.Key("DETECT_CHARSET").MustBool(false)
	Preview.CacheSize = sec.Key("CACHE_SIZE").MustInt(128)
	Preview.BindingsFile = sec.Key("BINDINGS_FILE").MustString("")
}
