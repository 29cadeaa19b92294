// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// CfgProvider is the provider the settings were last loaded from.
var CfgProvider ConfigProvider

// LoadSettingsFrom loads every known section from rootCfg into the package-level settings.
func LoadSettingsFrom(rootCfg ConfigProvider) {
	CfgProvider = rootCfg
	loadLogFrom(rootCfg)
	loadServerFrom(rootCfg)
	loadCorsFrom(rootCfg)
	loadPreviewFrom(rootCfg)
	loadJupyterFrom(rootCfg)
	loadHighlightFrom(rootCfg)
}

// LoadSettings reads the given ini file (or only defaults when empty) and loads all settings.
func LoadSettings(file string) error {
	cfg, err := NewConfigProviderFromFile(file)
	if err != nil {
		return err
	}
	LoadSettingsFrom(cfg)
	return nil
}
