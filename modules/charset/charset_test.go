// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"errors"
	"testing"

	"code.gitea.io/filepreview/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestToUTF8(t *testing.T) {
	t.Run("ASCII", func(t *testing.T) {
		out, name, err := ToUTF8([]byte("<root/>"), "ASCII", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root/>", string(out))
		assert.Equal(t, "UTF-8", name)
	})

	t.Run("UTF-8 declared", func(t *testing.T) {
		out, _, err := ToUTF8([]byte("<root>¢</root>"), "utf-8", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root>¢</root>", string(out))
	})

	t.Run("UTF-8 BOM", func(t *testing.T) {
		out, name, err := ToUTF8(append(UTF8BOM, []byte("<root/>")...), "", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root/>", string(out))
		assert.Equal(t, "UTF-8", name)
	})

	t.Run("UTF-16 BOM", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		raw, err := enc.NewEncoder().Bytes([]byte("<root>€</root>"))
		require.NoError(t, err)

		out, name, err := ToUTF8(raw, "", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root>€</root>", string(out))
		assert.Equal(t, "UTF-16LE", name)
	})

	t.Run("UTF-16 declared on ASCII compatible content", func(t *testing.T) {
		out, _, err := ToUTF8([]byte("<root>€</root>"), "UTF-16", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root>€</root>", string(out))
	})

	t.Run("ISO-8859-1", func(t *testing.T) {
		raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("<root>é</root>"))
		require.NoError(t, err)

		out, _, err := ToUTF8(raw, "ISO-8859-1", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<root>é</root>", string(out))
	})

	t.Run("invalid bytes for default", func(t *testing.T) {
		_, _, err := ToUTF8([]byte{'<', 'a', '>', 0xff, 0xfe, 0xfd, '<', '/', 'a', '>'}, "ASCII", ConvertOpts{})
		require.Error(t, err)
		assert.True(t, IsErrDecode(err))
		assert.ErrorIs(t, err, util.ErrInvalidArgument)
	})

	t.Run("replacement character with UTF-8 BOM", func(t *testing.T) {
		out, name, err := ToUTF8([]byte("\xef\xbb\xbf<r>\uFFFD</r>"), "", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<r>\uFFFD</r>", string(out))
		assert.Equal(t, "UTF-8", name)
	})

	t.Run("replacement character in UTF-16", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		raw, err := enc.NewEncoder().Bytes([]byte("<r>\uFFFD</r>"))
		require.NoError(t, err)

		out, _, err := ToUTF8(raw, "", ConvertOpts{})
		require.NoError(t, err)
		assert.Equal(t, "<r>\uFFFD</r>", string(out))
	})

	t.Run("invalid bytes with UTF-8 BOM", func(t *testing.T) {
		_, _, err := ToUTF8([]byte("\xef\xbb\xbf<a>\xff</a>"), "", ConvertOpts{})
		assert.True(t, IsErrDecode(err))
	})

	t.Run("unknown label", func(t *testing.T) {
		_, _, err := ToUTF8([]byte("<a/>"), "no-such-charset", ConvertOpts{})
		var unknown ErrUnknownCharset
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "no-such-charset", unknown.Label)
	})
}

func TestSniffUnicode(t *testing.T) {
	enc, name := SniffUnicode([]byte("<root/>"))
	assert.Nil(t, enc)
	assert.Empty(t, name)

	enc, name = SniffUnicode([]byte{'<', 0x00, '?', 0x00, 'x', 0x00})
	assert.NotNil(t, enc)
	assert.Equal(t, "UTF-16LE", name)

	enc, name = SniffUnicode([]byte{0xfe, 0xff, 0x00, '<'})
	assert.NotNil(t, enc)
	assert.Equal(t, "UTF-16BE", name)
}

func TestLookup(t *testing.T) {
	_, name, err := Lookup("latin1")
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	_, _, err = Lookup("Shift_JIS")
	assert.NoError(t, err)
}

func TestDetectEncoding(t *testing.T) {
	name, err := DetectEncoding([]byte("plain ascii"))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", name)
}
