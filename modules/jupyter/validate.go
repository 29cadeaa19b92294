// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"bytes"
	"fmt"
	"sync"

	"code.gitea.io/filepreview/modules/json"
	nbformatresources "code.gitea.io/filepreview/resources/nbformat"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	notebookSchema     *jsonschema.Schema
	notebookSchemaOnce sync.Once
	notebookSchemaErr  error
)

func loadNotebookSchema() (*jsonschema.Schema, error) {
	notebookSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(nbformatresources.SchemaName, bytes.NewReader(nbformatresources.V4Schema())); err != nil {
			notebookSchemaErr = err
			return
		}
		notebookSchema, notebookSchemaErr = compiler.Compile(nbformatresources.SchemaName)
	})

	return notebookSchema, notebookSchemaErr
}

// ValidateNotebook checks content against the embedded nbformat v4 schema
func ValidateNotebook(content []byte) error {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return ErrInvalidNotebook{Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}

	schema, err := loadNotebookSchema()
	if err != nil {
		return fmt.Errorf("load notebook schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return ErrInvalidNotebook{Reason: validationErr.Error()}
		}
		return ErrInvalidNotebook{Reason: err.Error()}
	}
	return nil
}
