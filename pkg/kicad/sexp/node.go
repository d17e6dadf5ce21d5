package sexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one S-expression: either an atomic Symbol or a List.
type Node interface {
	IsLeaf() bool
	String() string
}

// Symbol is an atom: identifier, number or (unquoted) string content.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) String() string { return string(s) }

// List is a parenthesized sequence of nodes.
type List struct {
	Items []Node
}

func (l *List) IsLeaf() bool { return false }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Key returns the list's leading symbol, or "" for an empty or
// non-symbol-headed list.
func (l *List) Key() string {
	if len(l.Items) == 0 {
		return ""
	}
	if sym, ok := l.Items[0].(Symbol); ok {
		return string(sym)
	}
	return ""
}

// Get returns the item at index, or nil when out of range.
func (l *List) Get(index int) Node {
	if index < 0 || index >= len(l.Items) {
		return nil
	}
	return l.Items[index]
}

// Str extracts the symbol text at index.
func (l *List) Str(index int) (string, error) {
	item := l.Get(index)
	if item == nil {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(l.Items))
	}
	sym, ok := item.(Symbol)
	if !ok {
		return "", fmt.Errorf("expected atom at index %d, got list", index)
	}
	return string(sym), nil
}

// Float extracts a numeric value at index.
func (l *List) Float(index int) (float64, error) {
	s, err := l.Str(index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expected number at index %d: %w", index, err)
	}
	return v, nil
}

// Int extracts an integer value at index.
func (l *List) Int(index int) (int, error) {
	s, err := l.Str(index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected integer at index %d: %w", index, err)
	}
	return v, nil
}

// Find returns the first child list headed by key.
// Example: Find(pad, "at") locates (at 1.27 0) inside a pad record.
func Find(n Node, key string) (*List, bool) {
	list, ok := n.(*List)
	if !ok {
		return nil, false
	}
	for _, item := range list.Items {
		if sub, ok := item.(*List); ok && sub.Key() == key {
			return sub, true
		}
	}
	return nil, false
}

// FindAll returns every child list headed by key, in order.
func FindAll(n Node, key string) []*List {
	var result []*List
	list, ok := n.(*List)
	if !ok {
		return result
	}
	for _, item := range list.Items {
		if sub, ok := item.(*List); ok && sub.Key() == key {
			result = append(result, sub)
		}
	}
	return result
}

// FindAllDeep returns every list headed by key anywhere under n.
func FindAllDeep(n Node, key string) []*List {
	var result []*List
	list, ok := n.(*List)
	if !ok {
		return result
	}
	if list.Key() == key {
		result = append(result, list)
	}
	for _, item := range list.Items {
		result = append(result, FindAllDeep(item, key)...)
	}
	return result
}
