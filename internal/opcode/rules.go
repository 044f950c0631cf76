package opcode

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is one step of the normalization chain.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Operand is a literal substring replacement from the operand table.
type Operand struct {
	Match, Code string
}

// Operands is applied in order, by plain substring replacement. Earlier
// entries can change what later entries see.
var Operands = []Operand{
	{"eax", "0C"},
	{"rax", "0D"},
	{"al", "0A"},
	{"ax", "0B"},
	{"cl", "1A"},
	{", 1", ", L1"},
	{"r8", "RA"},
	{"r16", "RB"},
	{"r32", "RC"},
	{"r64", "RD"},
	{"r/m8", "MA"},
	{"r/m16", "MB"},
	{"r/m32", "MC"},
	{"r/m64", "MD"},
	{"imm8", "IA"},
	{"imm16", "IB"},
	{"imm32", "IC"},
	{"imm64", "ID"},
	{"rel8", "IA"},
	{"rel16", "IB"},
	{"rel32", "IC"},
	{"rel64", "ID"},
}

var (
	sizeSuffix      = regexp.MustCompile(`/?[ric][bwdq] `)
	registerInByte  = regexp.MustCompile(`\+ r[bwdq]`)
	trailingColumns = regexp.MustCompile(`[RMID]+ .+`)
	leadingToken    = regexp.MustCompile(`(w?[0-9a-f/]+) (.+)`)
)

var rules = []Rule{
	{"rex.w", func(s string) string { return strings.ReplaceAll(s, "REX.W + ", "w") }},
	{"byte-pairs", joinBytePairs},
	{"size-suffix", func(s string) string { return sizeSuffix.ReplaceAllString(s, "") }},
	{"register-in-opcode", func(s string) string { return registerInByte.ReplaceAllString(s, "") }},
	{"trailing-columns", func(s string) string { return trailingColumns.ReplaceAllString(s, "") }},
	{"subcode", joinSubcodes},
	{"lowercase", lower},
	{"operands", ReplaceOperands},
	{"commas", func(s string) string { return strings.ReplaceAll(s, ",", "") }},
	{"reorder", func(s string) string { return leadingToken.ReplaceAllString(s, "${2}${1}") }},
}

// Rules returns the normalization chain in the order it is applied.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Normalize runs a plain opcode row through every rule.
func Normalize(line string) string {
	for _, r := range rules {
		line = r.Apply(line)
	}
	return line
}

// ReplaceOperands applies the operand table to s.
func ReplaceOperands(s string) string {
	for _, op := range Operands {
		s = strings.ReplaceAll(s, op.Match, op.Code)
	}
	return s
}

// joinBytePairs drops every space that is followed by two upper-case hex
// digits, so "0F 38 F0" becomes "0F38F0".
func joinBytePairs(s string) string {
	return dropSpaces(s, func(next string) bool {
		return len(next) >= 2 && upperHex(next[0]) && upperHex(next[1])
	})
}

// joinSubcodes drops a space in front of "/<digit>".
func joinSubcodes(s string) string {
	return dropSpaces(s, func(next string) bool {
		return len(next) >= 2 && next[0] == '/' && next[1] >= '0' && next[1] <= '9'
	})
}

// dropSpaces removes each space for which ahead(rest of string) is true.
// The test looks ahead without consuming, so adjacent spaces are judged
// independently.
func dropSpaces(s string, ahead func(string) bool) string {
	if !strings.Contains(s, " ") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && ahead(s[i+1:]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func upperHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
