package sexp

import (
	"strconv"
	"strings"
)

// Quote wraps s in double quotes, escaping embedded quotes and
// backslashes per the KiCad S-expression grammar.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Fixed formats a value with a fixed number of decimal places.
// KiCad files use fixed-point notation throughout.
func Fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
