// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import "strings"

// NodeKind distinguishes the kinds of node kept in the tree
type NodeKind int

const (
	ElementNode NodeKind = iota
	CommentNode
	ProcInstNode
	DoctypeNode
)

const cdataStart = "<![CDATA["

// Attr is an attribute in document order
type Attr struct {
	Name  string
	Value string
}

// Text is a run of character data. Value has entities resolved, Raw is the source
// form including CDATA markers.
type Text struct {
	Value string
	Raw   string
}

// HasCDATA reports whether the run contains a CDATA section
func (t Text) HasCDATA() bool {
	return strings.Contains(t.Raw, cdataStart)
}

// IsBlank reports whether the run is whitespace only
func (t Text) IsBlank() bool {
	return strings.TrimSpace(t.Value) == ""
}

func (t *Text) append(value, raw string) {
	t.Value += value
	t.Raw += raw
}

// Node is an element, comment, processing instruction or DOCTYPE. Children are
// owned by their parent; Index is the position within the parent's Children (or
// within Document.Nodes for top-level nodes).
type Node struct {
	Kind     NodeKind
	Tag      string // element name or processing instruction target
	Attrs    []Attr
	Children []*Node
	Data     string // comment body, processing instruction or DOCTYPE directive

	// Text precedes the first child, Tail follows the node inside its parent
	Text Text
	Tail Text

	// Source is the node's own serialized form as it appears in the document
	Source string
	Line   int

	Parent *Node
	Index  int
}

// IsComment reports whether n is a comment
func (n *Node) IsComment() bool {
	return n.Kind == CommentNode
}

// Document is a parsed XML document. The declaration is not a node.
type Document struct {
	Declaration string
	Encoding    string
	Nodes       []*Node
	Root        *Node
}
