// Package svg parses SVG drawings into a tree of typed shape nodes
// with identifiers, bounding boxes and boundary point sampling. It
// covers the subset of SVG that Fritzing PCB views use: groups,
// circles, ellipses, rects, paths and polygon-like primitives.
package svg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	xmldom "github.com/jphsd/xml"
)

// Kind classifies a shape node.
type Kind int

const (
	KindGroup Kind = iota
	KindCircle
	KindRect
	KindPath
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	case KindPath:
		return "path"
	default:
		return "other"
	}
}

// Box is an axis-aligned bounding box in drawing units.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) Width() float64   { return b.MaxX - b.MinX }
func (b Box) Height() float64  { return b.MaxY - b.MinY }
func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Node is one element of the drawing tree.
type Node struct {
	Kind        Kind
	ID          string // element's own id attribute ("" when absent)
	EffectiveID string // own id, else the nearest ancestor's

	// Circle geometry (KindCircle; ellipses keep rx != ry).
	CX, CY, RX, RY float64

	// Rect geometry (KindRect).
	X, Y, W, H float64

	// Path geometry (KindPath).
	geo *pathGeometry

	Children []*Node // populated for KindGroup only
}

// Document is a parsed drawing.
type Document struct {
	Root []*Node
}

// Parse decodes SVG bytes into a shape tree. Identifier inheritance
// from groups to anonymous children is resolved here, in a single
// pass: every node carries its effective identifier.
func Parse(data []byte) (*Document, error) {
	root, err := xmldom.NewXMLDecoder(bytes.NewReader(data)).BuildDOM()
	if err != nil {
		return nil, fmt.Errorf("malformed drawing: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("malformed drawing: empty document")
	}

	doc := &Document{}
	if node := buildNode(root, ""); node != nil {
		doc.Root = append(doc.Root, node)
	}
	return doc, nil
}

func buildNode(elt *xmldom.Element, inherited string) *Node {
	if elt.Type != xmldom.Node {
		return nil
	}

	id := elt.Attributes["id"]
	effective := id
	if effective == "" {
		effective = inherited
	}

	switch elt.Name.Local {
	case "g", "svg":
		node := &Node{Kind: KindGroup, ID: id, EffectiveID: effective}
		for _, child := range elt.Children {
			if sub := buildNode(child, effective); sub != nil {
				node.Children = append(node.Children, sub)
			}
		}
		return node

	case "circle":
		r := parseLength(elt.Attributes["r"])
		return &Node{
			Kind: KindCircle, ID: id, EffectiveID: effective,
			CX: parseLength(elt.Attributes["cx"]),
			CY: parseLength(elt.Attributes["cy"]),
			RX: r, RY: r,
		}

	case "ellipse":
		return &Node{
			Kind: KindCircle, ID: id, EffectiveID: effective,
			CX: parseLength(elt.Attributes["cx"]),
			CY: parseLength(elt.Attributes["cy"]),
			RX: parseLength(elt.Attributes["rx"]),
			RY: parseLength(elt.Attributes["ry"]),
		}

	case "rect":
		return &Node{
			Kind: KindRect, ID: id, EffectiveID: effective,
			X: parseLength(elt.Attributes["x"]),
			Y: parseLength(elt.Attributes["y"]),
			W: parseLength(elt.Attributes["width"]),
			H: parseLength(elt.Attributes["height"]),
		}

	case "path":
		node := &Node{Kind: KindPath, ID: id, EffectiveID: effective}
		if geo, err := parsePathData(elt.Attributes["d"]); err == nil {
			node.geo = geo
		}
		return node

	case "line":
		node := &Node{Kind: KindPath, ID: id, EffectiveID: effective}
		node.geo = &pathGeometry{vertices: [][2]float64{
			{parseLength(elt.Attributes["x1"]), parseLength(elt.Attributes["y1"])},
			{parseLength(elt.Attributes["x2"]), parseLength(elt.Attributes["y2"])},
		}}
		return node

	case "polyline", "polygon":
		node := &Node{Kind: KindPath, ID: id, EffectiveID: effective}
		if verts := parsePointList(elt.Attributes["points"]); len(verts) > 0 {
			if elt.Name.Local == "polygon" {
				verts = append(verts, verts[0])
			}
			node.geo = &pathGeometry{vertices: verts}
		}
		return node

	case "defs", "metadata", "title", "desc", "style":
		return nil

	default:
		// Unknown primitives stay in the tree so connector references
		// to them still resolve; they just have no bounding box.
		return &Node{Kind: KindOther, ID: id, EffectiveID: effective}
	}
}

// BBox returns the node's axis-aligned bounding box in drawing units.
// Groups and degenerate shapes have none.
func (n *Node) BBox() (Box, bool) {
	switch n.Kind {
	case KindCircle:
		if n.RX <= 0 && n.RY <= 0 {
			return Box{}, false
		}
		return Box{n.CX - n.RX, n.CY - n.RY, n.CX + n.RX, n.CY + n.RY}, true

	case KindRect:
		if n.W <= 0 && n.H <= 0 {
			return Box{}, false
		}
		return Box{n.X, n.Y, n.X + n.W, n.Y + n.H}, true

	case KindPath:
		if n.geo == nil || len(n.geo.vertices) == 0 {
			return Box{}, false
		}
		box := Box{MinX: n.geo.vertices[0][0], MinY: n.geo.vertices[0][1],
			MaxX: n.geo.vertices[0][0], MaxY: n.geo.vertices[0][1]}
		for _, pt := range n.geo.vertices[1:] {
			box.expand(pt)
		}
		// Control points are off-path but bound the curve.
		for _, pt := range n.geo.controls {
			box.expand(pt)
		}
		return box, true

	default:
		return Box{}, false
	}
}

func (b *Box) expand(pt [2]float64) {
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
}

// SamplePoints returns up to n points along the node's boundary, in
// drawing units. Only paths sample; other kinds return nil.
func (n *Node) SamplePoints(count int) [][2]float64 {
	if n.Kind != KindPath || n.geo == nil || count <= 0 {
		return nil
	}
	verts := n.geo.vertices
	if len(verts) == 0 {
		return nil
	}
	if len(verts) <= count {
		out := make([][2]float64, len(verts))
		copy(out, verts)
		return out
	}
	out := make([][2]float64, 0, count)
	for i := 0; i < count; i++ {
		idx := i * (len(verts) - 1) / (count - 1)
		out = append(out, verts[idx])
	}
	return out
}

// Walk visits every non-group node depth-first in document order.
func (d *Document) Walk(fn func(*Node)) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, node := range nodes {
			if node.Kind == KindGroup {
				visit(node.Children)
				continue
			}
			fn(node)
		}
	}
	visit(d.Root)
}

// parseLength parses an SVG length, tolerating a trailing unit suffix
// (px, pt, mm, in, ...). Unparseable values read as zero, matching
// how Fritzing's own renderer treats them.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// parsePointList parses a polyline/polygon "points" attribute.
func parsePointList(s string) [][2]float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 4 || len(fields)%2 != 0 {
		return nil
	}
	verts := make([][2]float64, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			return nil
		}
		verts = append(verts, [2]float64{x, y})
	}
	return verts
}
