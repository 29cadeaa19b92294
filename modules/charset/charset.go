// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/util"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errInvalidUTF8 = errors.New("invalid byte sequence")

// UTF8BOM is the utf-8 byte-order marker
var UTF8BOM = []byte{'\xef', '\xbb', '\xbf'}

// ConvertOpts controls how undeclared or mislabelled content is handled
type ConvertOpts struct {
	// Detect guesses the charset of content that is not valid UTF-8 and has no usable label.
	Detect bool
}

// ErrDecode represents a failure to decode content with a given charset
type ErrDecode struct {
	Label string
	Err   error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("content is not valid %s", e.Label)
	}
	return fmt.Sprintf("content is not valid %s: %v", e.Label, e.Err)
}

func (e ErrDecode) Unwrap() error {
	return util.ErrInvalidArgument
}

// IsErrDecode checks if an error is a ErrDecode
func IsErrDecode(err error) bool {
	_, ok := err.(ErrDecode)
	return ok
}

// ErrUnknownCharset represents a charset label that cannot be resolved
type ErrUnknownCharset struct {
	Label string
}

func (e ErrUnknownCharset) Error() string {
	return fmt.Sprintf("unknown charset %q", e.Label)
}

func (e ErrUnknownCharset) Unwrap() error {
	return util.ErrInvalidArgument
}

// SniffUnicode reports the unicode encoding announced by a byte-order mark, or by
// the byte pattern of a BOM-less UTF-16 document starting with '<'. It returns nil
// when the content is ASCII compatible.
func SniffUnicode(content []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(content, UTF8BOM):
		return unicode.UTF8BOM, "UTF-8"
	case bytes.HasPrefix(content, []byte{0xfe, 0xff}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "UTF-16BE"
	case bytes.HasPrefix(content, []byte{0xff, 0xfe}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "UTF-16LE"
	case bytes.HasPrefix(content, []byte{0x00, '<', 0x00}):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "UTF-16BE"
	case bytes.HasPrefix(content, []byte{'<', 0x00, '?', 0x00}), bytes.HasPrefix(content, []byte{'<', 0x00, '!', 0x00}):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "UTF-16LE"
	}
	return nil, ""
}

// Lookup resolves a charset label to an encoding, trying the IANA registry first
// and the WHATWG labels second.
func Lookup(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		name, _ := ianaindex.IANA.Name(enc)
		if name == "" {
			name = label
		}
		return enc, name, nil
	}
	if enc, err := htmlindex.Get(label); err == nil {
		name, _ := htmlindex.Name(enc)
		return enc, name, nil
	}
	return nil, "", ErrUnknownCharset{Label: label}
}

func isUTF8Compatible(label string) bool {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(label), "_", "-")) {
	case "", "ASCII", "US-ASCII", "UTF-8", "UTF8", "ISO646-US":
		return true
	}
	return false
}

// isUnicodeFamily reports labels that name a multi-byte unicode form. Content that
// is readable as ASCII while declaring one of these has already been transcoded.
func isUnicodeFamily(label string) bool {
	l := strings.ToUpper(strings.TrimSpace(label))
	return strings.HasPrefix(l, "UTF-16") || strings.HasPrefix(l, "UTF-32") || l == "UCS-2" || l == "ISO-10646-UCS-2"
}

// ToUTF8 decodes content to UTF-8. A byte-order mark wins over the declared label.
// It returns the decoded bytes and the name of the charset that was applied.
func ToUTF8(content []byte, label string, opts ConvertOpts) ([]byte, string, error) {
	if enc, name := SniffUnicode(content); enc != nil {
		if name == "UTF-8" && !utf8.Valid(content) {
			return nil, "", ErrDecode{Label: name, Err: errInvalidUTF8}
		}
		out, err := decode(enc, content)
		if err != nil {
			return nil, "", ErrDecode{Label: name, Err: err}
		}
		return bytes.TrimPrefix(out, UTF8BOM), name, nil
	}

	if isUTF8Compatible(label) || isUnicodeFamily(label) {
		if utf8.Valid(content) {
			return content, "UTF-8", nil
		}
		if !opts.Detect {
			return nil, "", ErrDecode{Label: labelOrDefault(label)}
		}
		guessed, err := DetectEncoding(content)
		if err != nil || isUTF8Compatible(guessed) {
			return nil, "", ErrDecode{Label: labelOrDefault(label), Err: err}
		}
		log.Debug("charset: %s content is not valid, guessed %s", labelOrDefault(label), guessed)
		label = guessed
	}

	enc, name, err := Lookup(label)
	if err != nil {
		return nil, "", err
	}
	out, err := decode(enc, content)
	if err != nil {
		return nil, "", ErrDecode{Label: name, Err: err}
	}
	return out, name, nil
}

func labelOrDefault(label string) string {
	if label == "" {
		return "UTF-8"
	}
	return label
}

func decode(enc encoding.Encoding, content []byte) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DetectEncoding guesses the charset of content
func DetectEncoding(content []byte) (string, error) {
	if utf8.Valid(content) {
		return "UTF-8", nil
	}
	result, err := chardet.NewTextDetector().DetectBest(content)
	if err != nil {
		return "", err
	}
	log.Debug("charset: detected %s (confidence %d)", result.Charset, result.Confidence)
	return result.Charset, nil
}
