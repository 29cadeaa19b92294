// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package highlight

import (
	"bytes"
	gohtml "html"
	"io"
	"path"
	"strings"

	"code.gitea.io/filepreview/modules/log"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Options configures a Highlighter
type Options struct {
	Style       string
	ClassPrefix string
}

// Highlighter turns source text into class-annotated HTML. It holds no mutable
// state and may be shared by concurrent renders.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New constructs a Highlighter. An unknown style falls back to chroma's default.
func New(opts Options) *Highlighter {
	style := styles.Get(opts.Style)
	if style == nil || (opts.Style != "" && style == styles.Fallback && !strings.EqualFold(opts.Style, styles.Fallback.Name)) {
		log.Warn("highlight: unknown style %q, using %s", opts.Style, styles.Fallback.Name)
		style = styles.Fallback
	}
	formatterOpts := []html.Option{
		html.WithClasses(true),
		html.WithLineNumbers(false),
		html.PreventSurroundingPre(true),
	}
	if opts.ClassPrefix != "" {
		formatterOpts = append(formatterOpts, html.ClassPrefix(opts.ClassPrefix))
	}
	return &Highlighter{
		style:     style,
		formatter: html.New(formatterOpts...),
	}
}

// StyleName returns the name of the chroma style in use
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

func getLexer(name string) chroma.Lexer {
	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// LexerNameForFile returns the lexer name chroma would pick for a filename,
// analysing content when the name is ambiguous. It returns "" when none matches.
func LexerNameForFile(filename string, content []byte) string {
	lexer := lexers.Match(path.Base(filename))
	if lexer == nil && len(content) > 0 {
		lexer = lexers.Analyse(string(content))
	}
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Lines highlights code with the named lexer and returns one HTML string per
// source line. Every returned line has balanced markup and no trailing newline.
func (h *Highlighter) Lines(lexerName, code string) []string {
	if code == "" {
		return nil
	}
	iterator, err := getLexer(lexerName).Tokenise(nil, code)
	if err != nil {
		log.Error("highlight: failed to tokenise with %s: %v", lexerName, err)
		return plainLines(code)
	}

	tokensLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	lines := make([]string, 0, len(tokensLines))
	buf := &bytes.Buffer{}
	for _, tokens := range tokensLines {
		buf.Reset()
		if err := h.formatter.Format(buf, h.style, chroma.Literator(trimLineTokens(tokens)...)); err != nil {
			log.Error("highlight: failed to format line: %v", err)
			return plainLines(code)
		}
		lines = append(lines, buf.String())
	}
	return lines
}

// trimLineTokens drops the line terminator and any token left empty by it
func trimLineTokens(tokens []chroma.Token) []chroma.Token {
	out := make([]chroma.Token, 0, len(tokens))
	for i, token := range tokens {
		if i == len(tokens)-1 {
			token.Value = strings.TrimSuffix(token.Value, "\n")
		}
		if token.Value != "" {
			out = append(out, token)
		}
	}
	return out
}

// HTML highlights code and joins the per-line output with newlines
func (h *Highlighter) HTML(lexerName, code string) string {
	return strings.Join(h.Lines(lexerName, code), "\n")
}

// WriteCSS writes the stylesheet matching the classes emitted by this Highlighter
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

func plainLines(code string) []string {
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	for i, line := range lines {
		lines[i] = gohtml.EscapeString(line)
	}
	return lines
}
