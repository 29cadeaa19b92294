// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"strings"
	"unicode"
)

// FormatDoctype formats the body of a DOCTYPE directive (the text between "<!"
// and ">"). Declarations of an internal subset go on their own indented lines.
func FormatDoctype(directive string) string {
	head, subset, tail, ok := splitDoctype(directive)
	if !ok {
		return "<!" + directive + ">\n"
	}

	var sb strings.Builder
	sb.WriteString("<!")
	sb.WriteString(strings.TrimRightFunc(head, unicode.IsSpace))
	sb.WriteString(" [\n")
	for _, decl := range splitDeclarations(subset) {
		sb.WriteString(indentUnit)
		sb.WriteString(decl)
		sb.WriteByte('\n')
	}
	sb.WriteByte(']')
	sb.WriteString(strings.TrimSpace(tail))
	sb.WriteString(">\n")
	return sb.String()
}

// splitDoctype separates a DOCTYPE body around its internal subset
func splitDoctype(body string) (head, subset, tail string, ok bool) {
	var quote byte
	open := -1
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			open = i
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return body, "", "", false
	}
	end := strings.LastIndexByte(body, ']')
	if end < open {
		return body, "", "", false
	}
	return body[:open], body[open+1 : end], body[end+1:], true
}

// splitDeclarations splits an internal subset into markup declarations and
// parameter entity references, in order.
func splitDeclarations(subset string) []string {
	var decls []string
	for i := 0; i < len(subset); {
		c := subset[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
			continue
		case c == '<':
			end := declarationEnd(subset, i)
			decls = append(decls, subset[i:end])
			i = end
		case c == '%':
			end := strings.IndexByte(subset[i:], ';')
			if end < 0 {
				decls = append(decls, strings.TrimSpace(subset[i:]))
				return decls
			}
			decls = append(decls, subset[i:i+end+1])
			i += end + 1
		default:
			end := strings.IndexAny(subset[i:], " \t\r\n<")
			if end < 0 {
				decls = append(decls, subset[i:])
				return decls
			}
			decls = append(decls, subset[i:i+end])
			i += end
		}
	}
	return decls
}

// declarationEnd returns the offset just past the '>' closing the declaration at start
func declarationEnd(s string, start int) int {
	var quote byte
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<':
			depth++
		case c == '>':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}
