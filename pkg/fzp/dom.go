package fzp

import (
	"strings"

	xmldom "github.com/jphsd/xml"
)

// DOM helpers over the jphsd/xml element tree. Lookups match on the
// local element name only, so namespaced (f:title) and plain (title)
// descriptors resolve identically.

// findFirst returns the first descendant node with the given local
// name, in document order.
func findFirst(elt *xmldom.Element, local string) *xmldom.Element {
	if elt == nil {
		return nil
	}
	for _, child := range elt.Children {
		if child.Type != xmldom.Node {
			continue
		}
		if child.Name.Local == local {
			return child
		}
		if found := findFirst(child, local); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every descendant node with the given local name,
// in document order.
func findAll(elt *xmldom.Element, local string) []*xmldom.Element {
	var result []*xmldom.Element
	if elt == nil {
		return result
	}
	for _, child := range elt.Children {
		if child.Type != xmldom.Node {
			continue
		}
		if child.Name.Local == local {
			result = append(result, child)
		}
		result = append(result, findAll(child, local)...)
	}
	return result
}

// childNodes returns the direct child nodes of elt, skipping character
// data.
func childNodes(elt *xmldom.Element) []*xmldom.Element {
	var result []*xmldom.Element
	if elt == nil {
		return result
	}
	for _, child := range elt.Children {
		if child.Type == xmldom.Node {
			result = append(result, child)
		}
	}
	return result
}

// elementText concatenates the character data directly under elt.
func elementText(elt *xmldom.Element) string {
	if elt == nil {
		return ""
	}
	var sb strings.Builder
	for _, child := range elt.Children {
		if child.Type == xmldom.Content {
			sb.Write(child.Content)
		}
	}
	return sb.String()
}
