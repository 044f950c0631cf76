package opcode

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Class is the routing decision taken for a row before any rewriting.
type Class int

const (
	// Row is a plain opcode row; it runs through the rule chain.
	Row Class = iota
	// Vector rows are VEX/EVEX encoded or name an xmm/ymm/zmm register.
	Vector
	// DropEmpty marks an empty line.
	DropEmpty
	// DropLeading marks a line whose first character cannot start an opcode.
	DropLeading
	// DropREX marks a "REX + " row.
	DropREX
)

func (c Class) String() string {
	switch c {
	case Row:
		return "row"
	case Vector:
		return "vector"
	case DropEmpty:
		return "empty"
	case DropLeading:
		return "leading_char"
	case DropREX:
		return "rex_prefix"
	default:
		return "unknown"
	}
}

// Dropped reports whether rows of this class are left out of the output.
func (c Class) Dropped() bool {
	return c == DropEmpty || c == DropLeading || c == DropREX
}

var vectorRegister = regexp.MustCompile(`[x-z]mm`)

// Classify decides how a row is handled. Vector detection wins over every
// deletion test, and an empty line is dropped rather than inspected.
func Classify(line string) Class {
	if IsVector(line) {
		return Vector
	}
	if line == "" {
		return DropEmpty
	}
	r, _ := utf8.DecodeRuneInString(line)
	if !opcodeLead(r) {
		return DropLeading
	}
	if strings.HasPrefix(line, "REX + ") {
		return DropREX
	}
	return Row
}

// IsVector reports whether the row belongs to the vector rewriter.
func IsVector(line string) bool {
	return strings.HasPrefix(line, "VEX") ||
		strings.HasPrefix(line, "EVEX") ||
		vectorRegister.MatchString(line)
}

// opcodeLead accepts digits, 'R' and the upper-case hex letters.
func opcodeLead(r rune) bool {
	return (r >= '0' && r <= '9') || r == 'R' || (r >= 'A' && r <= 'F')
}
