// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"bytes"
	"strings"
)

const indentUnit = "    "

// shape is how an element is laid out, decided once per node
type shape int

const (
	shapeEmpty shape = iota
	shapeChildren
	shapeComment
	shapeText
)

func classify(n *Node) shape {
	switch {
	case n.Kind == CommentNode:
		return shapeComment
	case len(n.Children) > 0:
		return shapeChildren
	case elementText(n) != "":
		return shapeText
	default:
		return shapeEmpty
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "]]>", "]]&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

func indentString(level int) string {
	return strings.Repeat(indentUnit, level)
}

func indentText(text string, level int) string {
	prefix := indentString(level)
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// textValue renders a run of character data. A run holding a CDATA section is
// kept in its source form.
func textValue(t Text) string {
	if t.HasCDATA() {
		return t.Raw
	}
	return textEscaper.Replace(t.Value)
}

// elementText returns the trimmed text content of a leaf element
func elementText(n *Node) string {
	var text string
	if strings.Contains(n.Source, cdataStart) {
		text = ParseTextFromElementSource(n.Tag, []byte(n.Source))
	} else {
		text = textEscaper.Replace(n.Text.Value)
	}
	return strings.TrimSpace(text)
}

// ParseTextFromElementSource returns the inner content of an element from its
// serialized form: everything after its start tag and before its last end tag.
func ParseTextFromElementSource(tag string, source []byte) string {
	start := startTagEnd(tag, source)
	if start < 0 {
		return ""
	}
	end := bytes.LastIndex(source, []byte("</"+tag))
	if end < start {
		return ""
	}
	return string(source[start:end])
}

// startTagEnd returns the offset just past the start tag of the element source
// begins with, skipping over quoted attribute values.
func startTagEnd(tag string, source []byte) int {
	open := bytes.Index(source, []byte("<"+tag))
	if open < 0 {
		return -1
	}
	var quote byte
	for i := open + 1 + len(tag); i < len(source); i++ {
		c := source[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return -1
}

// AttributesString joins the attributes of n as name="value" pairs in document order
func AttributesString(n *Node) string {
	var sb strings.Builder
	for i, attr := range n.Attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(attr.Value))
		sb.WriteByte('"')
	}
	return sb.String()
}

func formattedAttributes(n *Node) string {
	if attrs := AttributesString(n); attrs != "" {
		return " " + attrs
	}
	return ""
}

// FormatElement formats n and its subtree at the given indentation level. The
// result always ends with a newline.
func FormatElement(n *Node, indent int, sameLine bool) string {
	switch n.Kind {
	case ProcInstNode:
		return formatProcInst(n, indent)
	case DoctypeNode:
		return FormatDoctype(n.Data)
	}

	switch classify(n) {
	case shapeChildren:
		return FormatElementWithChildren(n, indent, sameLine)
	case shapeComment:
		return FormatComment(n, indent)
	case shapeText:
		return FormatElementWithText(n, indent, sameLine)
	default:
		return FormatEmptyElement(n, indent)
	}
}

// FormatEmptyElement formats n as a self-closing tag
func FormatEmptyElement(n *Node, indent int) string {
	return indentString(indent) + "<" + n.Tag + formattedAttributes(n) + " />\n"
}

// FormatElementWithText formats a leaf element with text content. When sameLine
// is set the text stays between the tags on one line.
func FormatElementWithText(n *Node, indent int, sameLine bool) string {
	prefix := indentString(indent)
	open := "<" + n.Tag + formattedAttributes(n) + ">"
	closing := "</" + n.Tag + ">\n"
	text := elementText(n)

	if sameLine {
		return prefix + open + text + closing
	}
	return prefix + open + "\n" + indentText(text, indent+1) + "\n" + prefix + closing
}

// FormatComment formats a comment node verbatim
func FormatComment(n *Node, indent int) string {
	return indentString(indent) + "<!--" + n.Data + "-->\n"
}

func formatProcInst(n *Node, indent int) string {
	if n.Data == "" {
		return indentString(indent) + "<?" + n.Tag + "?>\n"
	}
	return indentString(indent) + "<?" + n.Tag + " " + n.Data + "?>\n"
}

func formatTextRun(sb *strings.Builder, t Text, indent int) {
	if t.IsBlank() && !t.HasCDATA() {
		return
	}
	if text := strings.TrimSpace(textValue(t)); text != "" {
		sb.WriteString(indentText(text, indent))
		sb.WriteByte('\n')
	}
}

// FormatElementWithChildren formats n with each child one level deeper. Text
// interleaved with the children is kept on its own lines.
func FormatElementWithChildren(n *Node, indent int, sameLine bool) string {
	prefix := indentString(indent)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("<" + n.Tag + formattedAttributes(n) + ">\n")
	formatTextRun(&sb, n.Text, indent+1)
	for _, child := range n.Children {
		sb.WriteString(FormatElement(child, indent+1, sameLine))
		formatTextRun(&sb, child.Tail, indent+1)
	}
	sb.WriteString(prefix)
	sb.WriteString("</" + n.Tag + ">\n")
	return sb.String()
}
