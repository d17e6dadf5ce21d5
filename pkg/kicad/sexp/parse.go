package sexp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Parse reads all top-level S-expressions from r. Quoted strings are
// unwrapped to their content; the reader does not distinguish them
// from bare symbols, which is sufficient for inspecting KiCad output.
func Parse(r io.Reader) ([]Node, error) {
	p := &parser{reader: bufio.NewReader(r)}
	var result []Node
	for {
		node, err := p.next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, node)
	}
}

// ParseString parses S-expressions from a string.
func ParseString(s string) ([]Node, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	reader *bufio.Reader
}

// next returns the next expression, or io.EOF at end of input.
func (p *parser) next() (Node, error) {
	ch, err := p.skipSpace()
	if err != nil {
		return nil, err
	}

	switch ch {
	case '(':
		p.reader.ReadRune()
		return p.parseList()
	case ')':
		return nil, fmt.Errorf("unexpected ')'")
	case '"':
		p.reader.ReadRune()
		return p.parseString()
	default:
		return p.parseSymbol()
	}
}

func (p *parser) parseList() (Node, error) {
	list := &List{}
	for {
		ch, err := p.skipSpace()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected EOF in list")
		}
		if err != nil {
			return nil, err
		}
		if ch == ')' {
			p.reader.ReadRune()
			return list, nil
		}
		item, err := p.next()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
}

func (p *parser) parseString() (Node, error) {
	var sb strings.Builder
	for {
		ch, _, err := p.reader.ReadRune()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF in string")
		}
		switch ch {
		case '"':
			return Symbol(sb.String()), nil
		case '\\':
			next, _, err := p.reader.ReadRune()
			if err != nil {
				return nil, fmt.Errorf("unexpected EOF after backslash")
			}
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

func (p *parser) parseSymbol() (Node, error) {
	var sb strings.Builder
	for {
		ch, _, err := p.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			p.reader.UnreadRune()
			break
		}
		sb.WriteRune(ch)
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("empty symbol")
	}
	return Symbol(sb.String()), nil
}

// skipSpace consumes whitespace and peeks the next rune without
// consuming it.
func (p *parser) skipSpace() (rune, error) {
	for {
		ch, _, err := p.reader.ReadRune()
		if err != nil {
			return 0, err
		}
		if unicode.IsSpace(ch) {
			continue
		}
		p.reader.UnreadRune()
		return ch, nil
	}
}
