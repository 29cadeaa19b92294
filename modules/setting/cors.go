// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import "time"

// CORSConfig defines CORS settings
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string // this option was named "SCHEME_DOMAIN" before
	Methods          []string
	MaxAge           time.Duration
	AllowCredentials bool
	Headers          []string
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD"},
	Headers:     []string{"Content-Type", "User-Agent"},
	MaxAge:      10 * time.Minute,
}

func loadCorsFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("cors")
	CORSConfig.Enabled = sec.Key("ENABLED").MustBool(false)
	CORSConfig.AllowDomain = sec.Key("ALLOW_DOMAIN").Strings(",")
	if len(CORSConfig.AllowDomain) == 0 {
		CORSConfig.AllowDomain = []string{"*"}
	}
	CORSConfig.Methods = sec.Key("METHODS").Strings(",")
	if len(CORSConfig.Methods) == 0 {
		CORSConfig.Methods = []string{"GET", "HEAD"}
	}
	CORSConfig.Headers = sec.Key("HEADERS").Strings(",")
	if len(CORSConfig.Headers) == 0 {
		CORSConfig.Headers = []string{"Content-Type", "User-Agent"}
	}
	CORSConfig.MaxAge = sec.Key("MAX_AGE").MustDuration(10 * time.Minute)
	CORSConfig.AllowCredentials = sec.Key("ALLOW_CREDENTIALS").MustBool(false)
}
