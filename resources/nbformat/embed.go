// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package nbformat

import (
	"embed"
	"fmt"
)

// SchemaName is the resource name the v4 notebook schema is registered under
const SchemaName = "nbformat.v4.schema.json"

//go:embed schemas/nbformat.v4.schema.json
var schemaFiles embed.FS

var schemaJSON []byte

func init() {
	var err error
	schemaJSON, err = schemaFiles.ReadFile("schemas/" + SchemaName)
	if err != nil {
		panic(fmt.Sprintf("nbformat schema missing: %v", err))
	}
}

// V4Schema returns the embedded nbformat v4 schema content.
func V4Schema() []byte {
	return schemaJSON
}
