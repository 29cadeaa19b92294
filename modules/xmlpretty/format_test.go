// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributesString(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"no attributes", "<root/>", ""},
		{"one attribute", `<root test_key="test_value" />`, `test_key="test_value"`},
		{"single quotes", `<root test_key='test_value' />`, `test_key="test_value"`},
		{"multiple attributes", `<root test_key="value" int_key="999" />`, `test_key="value" int_key="999"`},
		{"escaped values", `<root a='say "hi"' b="1 &amp; 2" c="&lt;x>" />`, `a="say &quot;hi&quot;" b="1 &amp; 2" c="&lt;x>"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, AttributesString(parseRoot(t, c.input)))
		})
	}
}

func TestFormatEmptyElement(t *testing.T) {
	assert.Equal(t, "        <root />\n", FormatEmptyElement(parseRoot(t, "<root />"), 2))
	assert.Equal(t, "        <root key=\"value\" />\n", FormatEmptyElement(parseRoot(t, `<root key="value" />`), 2))
	assert.Equal(t, "<root />\n", FormatEmptyElement(parseRoot(t, "<root />"), 0))
}

func TestFormatElementSelfClosingNormalization(t *testing.T) {
	expected := "<x />\n"
	assert.Equal(t, expected, FormatElement(parseRoot(t, "<x></x>"), 0, false))
	assert.Equal(t, expected, FormatElement(parseRoot(t, "<x/>"), 0, false))
	assert.Equal(t, expected, FormatElement(parseRoot(t, "<x>  \n  </x>"), 0, false))
}

func TestFormatElementWithText(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		sameLine bool
		expected string
	}{
		{
			name:     "no attributes",
			input:    "<root>test text</root>",
			expected: "        <root>\n            test text\n        </root>\n",
		},
		{
			name:     "same line",
			input:    "<root>test text</root>",
			sameLine: true,
			expected: "        <root>test text</root>\n",
		},
		{
			name:     "multiline text",
			input:    "<root>test\ntext</root>",
			expected: "        <root>\n            test\n            text\n        </root>\n",
		},
		{
			name:     "prefixed with whitespace",
			input:    "<root>       test text</root>",
			expected: "        <root>\n            test text\n        </root>\n",
		},
		{
			name:     "with cdata",
			input:    "<root>cdata<![CDATA[<test>Test CDATA</test>]]></root>",
			expected: "        <root>\n            cdata<![CDATA[<test>Test CDATA</test>]]>\n        </root>\n",
		},
		{
			name:     "one attribute",
			input:    `<root test_key="value">test text</root>`,
			expected: "        <root test_key=\"value\">\n            test text\n        </root>\n",
		},
		{
			name:     "internal blank lines",
			input:    "<root>\n  a\n\n  b\n</root>",
			expected: "        <root>\n            a\n            \n              b\n        </root>\n",
		},
		{
			name:     "escaped text",
			input:    "<root>x &lt; y &amp;&amp; z > 0</root>",
			sameLine: true,
			expected: "        <root>x &lt; y &amp;&amp; z > 0</root>\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, FormatElementWithText(parseRoot(t, c.input), 2, c.sameLine))
		})
	}
}

func TestFormatElementWithChildren(t *testing.T) {
	assert.Equal(t, "        <root>\n            <child />\n        </root>\n",
		FormatElementWithChildren(parseRoot(t, "<root><child /></root>"), 2, false))
	assert.Equal(t, "        <root test_key=\"value\">\n            <child />\n        </root>\n",
		FormatElementWithChildren(parseRoot(t, `<root test_key="value"><child /></root>`), 2, false))
}

func TestFormatElementSameLineThreadsThroughDescendants(t *testing.T) {
	root := parseRoot(t, "<root><a><b>deep</b></a><c>text</c></root>")
	assert.Equal(t, `<root>
    <a>
        <b>deep</b>
    </a>
    <c>text</c>
</root>
`, FormatElement(root, 0, true))
}

func TestFormatElementMixedContent(t *testing.T) {
	root := parseRoot(t, "<p>Hello <b>world</b> again<!--note--></p>")
	assert.Equal(t, `<p>
    Hello
    <b>
        world
    </b>
    again
    <!--note-->
</p>
`, FormatElement(root, 0, false))
}

func TestFormatComment(t *testing.T) {
	root := parseRoot(t, "<root><!-- multi\n  line --></root>")
	assert.Equal(t, "    <!-- multi\n  line -->\n", FormatComment(root.Children[0], 1))
}

func TestFormatProcessingInstruction(t *testing.T) {
	root := parseRoot(t, `<root><?target some data?><?empty?></root>`)
	assert.Equal(t, "<root>\n    <?target some data?>\n    <?empty?>\n</root>\n", FormatElement(root, 0, false))
}

func TestParseTextFromElementSource(t *testing.T) {
	assert.Equal(t, "<![CDATA[<root>Test CDATA</root>]]>",
		ParseTextFromElementSource("root", []byte("<root><![CDATA[<root>Test CDATA</root>]]></root>")))

	// a start tag with attributes is skipped whole, even when a same-named tag sits in the CDATA
	assert.Equal(t, `<![CDATA[<root>x</root>]]>`,
		ParseTextFromElementSource("root", []byte(`<root a="1>"><![CDATA[<root>x</root>]]></root>`)))

	assert.Empty(t, ParseTextFromElementSource("other", []byte("<root/>")))
}

func TestFormatElementCDATASameNameChild(t *testing.T) {
	root := parseRoot(t, `<root a="1"><![CDATA[<root>inner</root>]]></root>`)
	assert.Equal(t, "<root a=\"1\">\n    <![CDATA[<root>inner</root>]]>\n</root>\n", FormatElement(root, 0, false))
}

func TestFormatDoctype(t *testing.T) {
	assert.Equal(t, "<!DOCTYPE root SYSTEM \"pathTo.dtd\">\n", FormatDoctype(`DOCTYPE root SYSTEM "pathTo.dtd"`))
	assert.Equal(t, "<!DOCTYPE root [\n    <!ELEMENT root (child)>\n    <!ELEMENT child (#PCDATA)>\n]>\n",
		FormatDoctype("DOCTYPE root [<!ELEMENT root (child)><!ELEMENT child (#PCDATA)>]"))
	assert.Equal(t, "<!DOCTYPE root SYSTEM \"x.dtd\" [\n    <!ATTLIST root a CDATA \"[>]\">\n    %ext;\n]>\n",
		FormatDoctype(`DOCTYPE root SYSTEM "x.dtd" [ <!ATTLIST root a CDATA "[>]"> %ext; ]`))
}
