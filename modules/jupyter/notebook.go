// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package jupyter

import (
	"strings"

	"code.gitea.io/filepreview/modules/json"
)

// Cell types
const (
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
	CellTypeRaw      = "raw"
)

// Output types
const (
	OutputTypeExecuteResult = "execute_result"
	OutputTypeDisplayData   = "display_data"
	OutputTypeStream        = "stream"
	OutputTypeError         = "error"
)

// MultilineString is a notebook string stored either as one string or as a list
// of lines. It always holds lines, each keeping its line terminator.
type MultilineString []string

// UnmarshalJSON implements json.Unmarshaler
func (s *MultilineString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = splitLines(str)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = lines
	return nil
}

// String joins the lines back together
func (s MultilineString) String() string {
	return strings.Join(s, "")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// KernelSpec describes the kernel a notebook was written for
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

// LanguageInfo describes the language of the kernel
type LanguageInfo struct {
	Name          string `json:"name"`
	FileExtension string `json:"file_extension,omitempty"`
	MimeType      string `json:"mimetype,omitempty"`
	PygmentsLexer string `json:"pygments_lexer,omitempty"`
}

// Metadata is the notebook level metadata used for rendering
type Metadata struct {
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

// Output is a code cell output
type Output struct {
	OutputType     string                     `json:"output_type"`
	ExecutionCount *int                       `json:"execution_count,omitempty"`
	Data           map[string]json.RawMessage `json:"data,omitempty"`
	Name           string                     `json:"name,omitempty"`
	Text           MultilineString            `json:"text,omitempty"`
	EName          string                     `json:"ename,omitempty"`
	EValue         string                     `json:"evalue,omitempty"`
	Traceback      []string                   `json:"traceback,omitempty"`
}

// Cell is a notebook cell
type Cell struct {
	CellType       string          `json:"cell_type"`
	ID             string          `json:"id,omitempty"`
	Source         MultilineString `json:"source"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
	Outputs        []Output        `json:"outputs,omitempty"`
}

// Notebook is a Jupyter notebook in nbformat 4
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

// Language returns the kernel language, or "" when the notebook does not name one
func (nb *Notebook) Language() string {
	if info := nb.Metadata.LanguageInfo; info != nil && info.Name != "" {
		return info.Name
	}
	if spec := nb.Metadata.KernelSpec; spec != nil && spec.Language != "" {
		return spec.Language
	}
	return ""
}

// ParseNotebook decodes a notebook, validating it against the nbformat v4 schema
// first when validate is set.
func ParseNotebook(content []byte, validate bool) (*Notebook, error) {
	if validate {
		if err := ValidateNotebook(content); err != nil {
			return nil, err
		}
	}
	nb := &Notebook{}
	if err := json.Unmarshal(content, nb); err != nil {
		return nil, ErrInvalidNotebook{Reason: err.Error()}
	}
	return nb, nil
}
