// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"code.gitea.io/filepreview/modules/charset"
)

// DefaultMaxDepth is the element nesting limit applied when none is configured
const DefaultMaxDepth = 256

// ParseOptions controls how a document is decoded and built into a tree
type ParseOptions struct {
	MaxDepth      int
	DetectCharset bool
}

// Parse decodes raw using its declared encoding and builds the document tree
func Parse(raw []byte, opts ParseOptions) (*Document, error) {
	text, err := decodeDocument(raw, opts)
	if err != nil {
		return nil, err
	}
	return parseText(text, opts.MaxDepth)
}

func decodeDocument(raw []byte, opts ParseOptions) (string, error) {
	label := ""
	if enc, _ := charset.SniffUnicode(raw); enc == nil {
		label = GetEncoding(GetDeclaration(string(raw)))
	}
	out, _, err := charset.ToUTF8(raw, label, charset.ConvertOpts{Detect: opts.DetectCharset})
	if err != nil {
		return "", ErrMalformedDocument{Reason: err.Error()}
	}
	return string(out), nil
}

type treeBuilder struct {
	text     string
	decoder  *xml.Decoder
	doc      *Document
	stack    []*Node
	starts   []int
	maxDepth int

	lineOffset int
	line       int
}

func parseText(text string, maxDepth int) (*Document, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = true
	decoder.Entity = map[string]string{}
	// content is UTF-8 by now whatever the declaration names
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	b := &treeBuilder{
		text:     text,
		decoder:  decoder,
		doc:      &Document{Declaration: GetDeclaration(text)},
		maxDepth: maxDepth,
		line:     1,
	}
	b.doc.Encoding = GetEncoding(b.doc.Declaration)

	for {
		start := decoder.InputOffset()
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err)
		}
		end := decoder.InputOffset()
		raw := text[start:end]

		switch t := token.(type) {
		case xml.StartElement:
			err = b.startElement(t, start)
		case xml.EndElement:
			err = b.endElement(t, start, end)
		case xml.CharData:
			err = b.charData(string(t), raw, start)
		case xml.Comment:
			err = b.addNode(&Node{Kind: CommentNode, Data: string(t), Source: raw, Line: b.lineAt(start)})
		case xml.ProcInst:
			err = b.procInst(t, raw, start)
		case xml.Directive:
			err = b.directive(string(t), raw, start)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(b.stack) > 0 {
		open := b.stack[len(b.stack)-1]
		return nil, ErrMalformedDocument{Reason: fmt.Sprintf("element <%s> is never closed", open.Tag), Line: open.Line}
	}
	if b.doc.Root == nil {
		return nil, ErrMalformedDocument{Reason: "document has no root element"}
	}
	return b.doc, nil
}

// lineAt converts a byte offset to a 1-based line number. Offsets only grow.
func (b *treeBuilder) lineAt(offset int64) int {
	if int(offset) > b.lineOffset {
		b.line += strings.Count(b.text[b.lineOffset:int(offset)], "\n")
		b.lineOffset = int(offset)
	}
	return b.line
}

func (b *treeBuilder) malformed(offset int64, format string, args ...any) error {
	return ErrMalformedDocument{Reason: fmt.Sprintf(format, args...), Line: b.lineAt(offset)}
}

func (b *treeBuilder) syntaxError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return ErrMalformedDocument{Reason: se.Msg, Line: se.Line}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrMalformedDocument{Reason: "unexpected end of document"}
	}
	return ErrMalformedDocument{Reason: err.Error()}
}

func (b *treeBuilder) addNode(n *Node) error {
	if depth := len(b.stack); depth > 0 {
		parent := b.stack[depth-1]
		n.Parent = parent
		n.Index = len(parent.Children)
		parent.Children = append(parent.Children, n)
		return nil
	}
	n.Index = len(b.doc.Nodes)
	b.doc.Nodes = append(b.doc.Nodes, n)
	return nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func (b *treeBuilder) startElement(t xml.StartElement, start int64) error {
	if len(b.stack) == 0 && b.doc.Root != nil {
		return b.malformed(start, "extra content after the root element <%s>", b.doc.Root.Tag)
	}
	if len(b.stack) >= b.maxDepth {
		return ErrDocumentTooDeep{Limit: b.maxDepth}
	}

	n := &Node{Kind: ElementNode, Tag: qualifiedName(t.Name), Line: b.lineAt(start)}
	if len(t.Attr) > 0 {
		n.Attrs = make([]Attr, 0, len(t.Attr))
		for _, a := range t.Attr {
			n.Attrs = append(n.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
		}
	}
	if err := b.addNode(n); err != nil {
		return err
	}
	if len(b.stack) == 0 {
		b.doc.Root = n
	}
	b.stack = append(b.stack, n)
	b.starts = append(b.starts, int(start))
	return nil
}

func (b *treeBuilder) endElement(t xml.EndElement, start, end int64) error {
	name := qualifiedName(t.Name)
	if len(b.stack) == 0 {
		return b.malformed(start, "unexpected end element </%s>", name)
	}
	last := len(b.stack) - 1
	n := b.stack[last]
	if n.Tag != name {
		return b.malformed(start, "element <%s> closed by </%s>", n.Tag, name)
	}
	n.Source = b.text[b.starts[last]:end]
	b.stack = b.stack[:last]
	b.starts = b.starts[:last]
	return nil
}

func (b *treeBuilder) charData(value, raw string, start int64) error {
	depth := len(b.stack)
	if depth == 0 {
		if strings.TrimSpace(value) != "" || strings.HasPrefix(raw, cdataStart) {
			return b.malformed(start, "text content outside the root element")
		}
		return nil
	}
	parent := b.stack[depth-1]
	if n := len(parent.Children); n > 0 {
		parent.Children[n-1].Tail.append(value, raw)
	} else {
		parent.Text.append(value, raw)
	}
	return nil
}

func (b *treeBuilder) procInst(t xml.ProcInst, raw string, start int64) error {
	if strings.EqualFold(t.Target, "xml") {
		if start != 0 {
			return b.malformed(start, "XML declaration allowed only at the start of the document")
		}
		return nil
	}
	return b.addNode(&Node{Kind: ProcInstNode, Tag: t.Target, Data: string(t.Inst), Source: raw, Line: b.lineAt(start)})
}

func (b *treeBuilder) directive(body, raw string, start int64) error {
	if len(b.stack) > 0 {
		return b.malformed(start, "<!%s> is not allowed inside element content", directiveKeyword(body))
	}
	if directiveKeyword(body) != "DOCTYPE" {
		return b.malformed(start, "unexpected <!%s> outside a DOCTYPE", directiveKeyword(body))
	}
	if b.doc.Root != nil {
		return b.malformed(start, "DOCTYPE must precede the root element")
	}
	for _, n := range b.doc.Nodes {
		if n.Kind == DoctypeNode {
			return b.malformed(start, "more than one DOCTYPE")
		}
	}
	b.declareEntities(body)
	return b.addNode(&Node{Kind: DoctypeNode, Data: body, Source: raw, Line: b.lineAt(start)})
}

func directiveKeyword(body string) string {
	if i := strings.IndexAny(body, " \t\r\n["); i >= 0 {
		return body[:i]
	}
	return body
}

var entityDeclPattern = regexp.MustCompile(`^<!ENTITY\s+([^\s%][^\s]*)\s+(?:"([^"]*)"|'([^']*)')\s*>$`)

// declareEntities makes general entities of the internal subset resolvable in content
func (b *treeBuilder) declareEntities(body string) {
	_, subset, _, ok := splitDoctype(body)
	if !ok {
		return
	}
	for _, decl := range splitDeclarations(subset) {
		m := entityDeclPattern.FindStringSubmatch(decl)
		if m == nil {
			continue
		}
		b.decoder.Entity[m[1]] = m[2] + m[3]
	}
}
