// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import "path/filepath"

// Server settings
var Server = struct {
	HTTPAddr       string
	HTTPPort       string
	AttachmentPath string
}{
	HTTPAddr: "0.0.0.0",
	HTTPPort: "3000",
}

// Log settings
var Log = struct {
	Level    string
	Mode     string
	FileName string
}{
	Level: "info",
	Mode:  "console",
}

func loadServerFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("server")
	Server.HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	Server.HTTPPort = sec.Key("HTTP_PORT").MustString("3000")
	Server.AttachmentPath = sec.Key("ATTACHMENT_PATH").MustString("data/attachments")
	if !filepath.IsAbs(Server.AttachmentPath) {
		Server.AttachmentPath = filepath.Clean(Server.AttachmentPath)
	}
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = sec.Key("LEVEL").MustString("info")
	Log.Mode = sec.Key("MODE").MustString("console")
	Log.FileName = sec.Key("FILE_NAME").MustString("")
}
