// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"errors"
	"fmt"

	"code.gitea.io/filepreview/modules/util"
)

// ErrMalformedDocument represents input that is not a well-formed XML document
type ErrMalformedDocument struct {
	Reason string
	Line   int
}

// IsErrMalformedDocument checks if an error is a ErrMalformedDocument
func IsErrMalformedDocument(err error) bool {
	var e ErrMalformedDocument
	return errors.As(err, &e)
}

func (err ErrMalformedDocument) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("malformed XML document on line %d: %s", err.Line, err.Reason)
	}
	return "malformed XML document: " + err.Reason
}

func (err ErrMalformedDocument) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrDocumentTooDeep represents a document nested deeper than the allowed limit
type ErrDocumentTooDeep struct {
	Limit int
}

// IsErrDocumentTooDeep checks if an error is a ErrDocumentTooDeep
func IsErrDocumentTooDeep(err error) bool {
	var e ErrDocumentTooDeep
	return errors.As(err, &e)
}

func (err ErrDocumentTooDeep) Error() string {
	return fmt.Sprintf("XML document exceeds the maximum nesting depth of %d", err.Limit)
}

func (err ErrDocumentTooDeep) Unwrap() error {
	return util.ErrInvalidArgument
}
