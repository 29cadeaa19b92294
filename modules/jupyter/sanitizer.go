// Copyright 2020 The Gogs Authors. All rights reserved.
// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

// Sanitizer returns the policy applied to notebook provided HTML: markdown cells
// and text/html outputs.
func Sanitizer() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class", "data-prompt-number").OnElements("div")
		p.AllowAttrs("class").OnElements("img", "span", "pre", "code")
		p.AllowURLSchemes("data")
		sanitizer = p
	})
	return sanitizer
}
