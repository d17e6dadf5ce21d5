package fzp

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	xmldom "github.com/jphsd/xml"
)

// DefaultName is used when the descriptor carries no title element.
const DefaultName = "Component"

// maxConnectorName caps connector labels; KiCad symbol bodies are sized
// from the longest pin name.
const maxConnectorName = 15

var nameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)

// Connector is one logical pin of a part, as declared in the .fzp
// descriptor.
type Connector struct {
	ID          string // descriptor id, unique within a part
	Name        string // display label, truncated to 15 chars
	Pin         string // externally visible pin designator
	SVGID       string // id of the pad shape in the PCB drawing ("" when unmapped)
	ThroughHole bool   // true when both copper0 and copper1 layers are referenced
}

// Part is the decoded content of a .fzp descriptor.
type Part struct {
	Name       string      // sanitized component title
	PCBImage   string      // PCB view image hint, possibly empty or stale
	Connectors []Connector // ordered connector table
}

// SanitizeName replaces every character outside [A-Za-z0-9_.-] with an
// underscore.
func SanitizeName(name string) string {
	return nameSanitizer.ReplaceAllString(name, "_")
}

// ParsePart decodes the .fzp descriptor bytes into a Part.
// A document that is not well-formed XML is an error; a descriptor
// without a connectors list yields an empty connector table.
func ParsePart(data []byte) (*Part, error) {
	root, err := xmldom.NewXMLDecoder(bytes.NewReader(data)).BuildDOM()
	if err != nil {
		return nil, fmt.Errorf("malformed descriptor: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("malformed descriptor: empty document")
	}

	part := &Part{Name: DefaultName}

	if title := findFirst(root, "title"); title != nil {
		if text := elementText(title); text != "" {
			part.Name = SanitizeName(text)
		}
	}

	// The part-level pcbView precedes the connector list in every
	// descriptor Fritzing writes, so the first one in document order
	// carries the drawing hint.
	if pcbView := findFirst(root, "pcbView"); pcbView != nil {
		if layers := findFirst(pcbView, "layers"); layers != nil {
			part.PCBImage = layers.Attributes["image"]
		}
	}

	if clist := findFirst(root, "connectors"); clist != nil {
		for _, conn := range childNodes(clist) {
			part.Connectors = append(part.Connectors, parseConnector(conn))
		}
	}

	sortConnectors(part.Connectors)
	return part, nil
}

func parseConnector(conn *xmldom.Element) Connector {
	id := conn.Attributes["id"]

	name := conn.Attributes["name"]
	if desc := findFirst(conn, "description"); desc != nil {
		if text := strings.TrimSpace(elementText(desc)); text != "" {
			name = text
		}
	}
	// Truncate by runes, not bytes; labels can carry accented text.
	if r := []rune(name); len(r) > maxConnectorName {
		name = string(r[:maxConnectorName])
	}
	// "passive" is Fritzing's placeholder label; the raw id is more
	// useful on a schematic.
	if strings.EqualFold(name, "passive") {
		name = id
	}

	c := Connector{ID: id, Name: name, Pin: pinNumber(id)}

	if pview := findFirst(conn, "pcbView"); pview != nil {
		var hasTop, hasBottom bool
		for _, p := range findAll(pview, "p") {
			switch p.Attributes["layer"] {
			case "copper0":
				hasBottom = true
			case "copper1":
				hasTop = true
			}
			// Last p element wins, even when it lacks the attribute.
			c.SVGID = p.Attributes["svgId"]
		}
		c.ThroughHole = hasTop && hasBottom
	}

	return c
}

// pinNumber maps "connector<N>" ids to pin "<N+1>"; anything else is
// used verbatim.
func pinNumber(id string) string {
	rest, ok := strings.CutPrefix(id, "connector")
	if !ok {
		return id
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return id
	}
	return strconv.Itoa(n + 1)
}

// sortConnectors orders by numeric pin number when every pin parses as
// an integer; otherwise the descriptor order stands.
func sortConnectors(conns []Connector) {
	nums := make(map[string]int, len(conns))
	for _, c := range conns {
		n, err := strconv.Atoi(c.Pin)
		if err != nil {
			return
		}
		nums[c.Pin] = n
	}
	sort.SliceStable(conns, func(i, j int) bool {
		return nums[conns[i].Pin] < nums[conns[j].Pin]
	})
}
