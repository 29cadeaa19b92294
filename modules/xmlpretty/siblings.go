// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package xmlpretty

// SiblingsBeforeRoot formats the top-level nodes preceding the root element, in
// document order.
func SiblingsBeforeRoot(doc *Document) []string {
	var siblings []string
	for i := doc.Root.Index - 1; i >= 0; i-- {
		siblings = append(siblings, FormatElement(doc.Nodes[i], 0, false))
	}
	for i, j := 0, len(siblings)-1; i < j; i, j = i+1, j-1 {
		siblings[i], siblings[j] = siblings[j], siblings[i]
	}
	return siblings
}

// SiblingsAfterRoot formats the top-level nodes following the root element, in
// document order.
func SiblingsAfterRoot(doc *Document) []string {
	var siblings []string
	for i := doc.Root.Index + 1; i < len(doc.Nodes); i++ {
		siblings = append(siblings, FormatElement(doc.Nodes[i], 0, false))
	}
	return siblings
}
