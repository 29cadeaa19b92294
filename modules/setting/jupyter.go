// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Jupyter notebook preview settings
var Jupyter = struct {
	Enabled         bool
	DefaultLanguage string
	ValidateSchema  bool
}{
	Enabled:         true,
	DefaultLanguage: "python",
	ValidateSchema:  true,
}

func loadJupyterFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("preview.jupyter")
	Jupyter.Enabled = sec.Key("ENABLED").MustBool(true)
	Jupyter.DefaultLanguage = ConfigSectionKeyString(sec, "DEFAULT_LANGUAGE", "python")
	Jupyter.ValidateSchema = sec.Key("VALIDATE_SCHEMA").MustBool(true)
}
