// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"fmt"

	"code.gitea.io/filepreview/modules/util"
)

// ErrInvalidCell represents a cell of unknown type
type ErrInvalidCell struct {
	CellType string
}

// IsErrInvalidCell checks if an error is a ErrInvalidCell
func IsErrInvalidCell(err error) bool {
	_, ok := err.(ErrInvalidCell)
	return ok
}

func (err ErrInvalidCell) Error() string {
	return fmt.Sprintf("%s is not a valid cell type", err.CellType)
}

func (err ErrInvalidCell) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrInvalidOutput represents an output of unknown type
type ErrInvalidOutput struct {
	OutputType string
}

// IsErrInvalidOutput checks if an error is a ErrInvalidOutput
func IsErrInvalidOutput(err error) bool {
	_, ok := err.(ErrInvalidOutput)
	return ok
}

func (err ErrInvalidOutput) Error() string {
	return fmt.Sprintf("%s is not a valid output type", err.OutputType)
}

func (err ErrInvalidOutput) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrInvalidNotebook represents content that is not a notebook
type ErrInvalidNotebook struct {
	Reason string
}

// IsErrInvalidNotebook checks if an error is a ErrInvalidNotebook
func IsErrInvalidNotebook(err error) bool {
	_, ok := err.(ErrInvalidNotebook)
	return ok
}

func (err ErrInvalidNotebook) Error() string {
	return "invalid notebook: " + err.Reason
}

func (err ErrInvalidNotebook) Unwrap() error {
	return util.ErrInvalidArgument
}
