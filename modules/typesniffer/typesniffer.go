// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package typesniffer

import (
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Preview types
const (
	PreviewTypeXML   = "xml"
	PreviewTypeIpynb = "ipynb"
)

// SniffLimit caps how many bytes are inspected when detecting a preview type.
const SniffLimit = 32 * 1024

var utf8BOM = []byte{'\xef', '\xbb', '\xbf'}

// DetectPreviewType inspects the head of a file and reports which preview
// renders it: "xml" when the first significant token is a declaration or a start
// element, "ipynb" when it is a JSON object holding notebook keys.
func DetectPreviewType(head []byte) (string, bool) {
	if len(head) > SniffLimit {
		head = head[:SniffLimit]
	}
	head = bytes.TrimLeft(bytes.TrimPrefix(head, utf8BOM), " \t\r\n")
	if len(head) == 0 {
		return "", false
	}

	switch head[0] {
	case '{':
		if bytes.Contains(head, []byte(`"cells"`)) && bytes.Contains(head, []byte(`"nbformat"`)) {
			return PreviewTypeIpynb, true
		}
	case '<':
		if _, ok := DetectXMLRoot(head); ok {
			return PreviewTypeXML, true
		}
	}
	return "", false
}

// DetectXMLRoot looks for the XML declaration or the first start element. When a
// start element is found meta holds its local name, namespace and optional
// xsi:schemaLocation.
func DetectXMLRoot(contentPrefix []byte) (meta map[string]string, ok bool) {
	meta = make(map[string]string)
	if len(contentPrefix) == 0 {
		return meta, false
	}
	if len(contentPrefix) > SniffLimit {
		contentPrefix = contentPrefix[:SniffLimit]
	}

	decoder := xml.NewDecoder(bytes.NewReader(contentPrefix))
	decoder.Strict = false
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	sawDeclaration := false
	for {
		token, err := decoder.RawToken()
		if err != nil {
			// a truncated head still counts once the declaration was seen
			return meta, sawDeclaration
		}

		switch t := token.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				sawDeclaration = true
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return meta, false
			}
		case xml.StartElement:
			meta["localName"] = t.Name.Local
			for _, attr := range t.Attr {
				switch {
				case attr.Name.Space == "" && attr.Name.Local == "xmlns":
					meta["namespace"] = attr.Value
				case attr.Name.Local == "schemaLocation":
					meta["schemaLocation"] = attr.Value
				}
			}
			return meta, true
		}
	}
}

// DetectByFilename maps well known extensions to a preview type
func DetectByFilename(filename string) (string, bool) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".xml", ".xsd", ".xsl", ".xslt", ".wsdl", ".rss", ".atom", ".svg", ".plist",
		".bpmn", ".cmmn", ".dmn", ".csproj", ".vcxproj", ".fsproj", ".pom", ".xhtml":
		return PreviewTypeXML, true
	case ".ipynb":
		return PreviewTypeIpynb, true
	}
	return "", false
}
