// Package validate checks fact statements against the fixed fact grammar:
//
//	identifier "(" first "," ws* second ")" "." ws* EOF
//
// The identifier is [A-Za-z_][A-Za-z0-9_]*. The first argument is one or
// more characters other than ',' and ')'. The second argument is one or more
// characters other than ')', so it may contain commas. A ')' inside either
// argument always breaks the match, which rules out nested call-like
// arguments.
package validate

import (
	"strings"
	"unicode"

	"github.com/agenthands/factscreen/internal/core/model"
)

// Diagnosis names the first grammar part a statement fails. The zero value
// means the statement is valid.
type Diagnosis string

const (
	OK            Diagnosis = ""
	Empty         Diagnosis = "empty"
	BadIdentifier Diagnosis = "identifier"
	NoOpenParen   Diagnosis = "open_paren"
	BadFirstArg   Diagnosis = "first_argument"
	NoSeparator   Diagnosis = "separator"
	BadSecondArg  Diagnosis = "second_argument"
	NoCloseParen  Diagnosis = "close_paren"
	NoPeriod      Diagnosis = "period"
	TrailingText  Diagnosis = "trailing"
)

// span holds byte offsets of the grammar parts of a valid statement.
type span struct {
	identEnd   int // '(' position
	comma      int
	closeParen int
}

// Validate reports whether the whole statement matches the fact grammar.
func Validate(statement string) bool {
	_, d := scan(statement)
	return d == OK
}

// ValidateBatch validates each statement independently. The result always
// has the same length and order as the input.
func ValidateBatch(statements []string) []bool {
	results := make([]bool, len(statements))
	for i, s := range statements {
		results[i] = Validate(s)
	}
	return results
}

// Diagnose returns the first failing grammar part, or OK.
func Diagnose(statement string) Diagnosis {
	_, d := scan(statement)
	return d
}

// Parse splits a valid statement into predicate and trimmed arguments.
func Parse(statement string) (model.Fact, bool) {
	sp, d := scan(statement)
	if d != OK {
		return model.Fact{}, false
	}
	return model.Fact{
		Predicate: statement[:sp.identEnd],
		Subject:   strings.TrimFunc(statement[sp.identEnd+1:sp.comma], isSpace),
		Object:    strings.TrimFunc(statement[sp.comma+1:sp.closeParen], isSpace),
	}, true
}

func scan(s string) (span, Diagnosis) {
	var sp span
	if strings.TrimFunc(s, isSpace) == "" {
		return sp, Empty
	}

	i := 0
	if !isIdentStart(s[0]) {
		return sp, BadIdentifier
	}
	for i = 1; i < len(s) && isIdentPart(s[i]); i++ {
	}
	if i == len(s) || s[i] != '(' {
		return sp, NoOpenParen
	}
	sp.identEnd = i

	// first argument: up to the first ',' with no ')' on the way
	start := i + 1
	for i = start; i < len(s) && s[i] != ',' && s[i] != ')'; i++ {
	}
	if i == start {
		return sp, BadFirstArg
	}
	if i == len(s) || s[i] == ')' {
		return sp, NoSeparator
	}
	sp.comma = i

	// Whitespace after the comma belongs to the separator or to the second
	// argument; either way at least one byte must precede the ')'.
	end := strings.IndexByte(s[sp.comma+1:], ')')
	if end < 0 {
		return sp, NoCloseParen
	}
	if end == 0 {
		return sp, BadSecondArg
	}
	sp.closeParen = sp.comma + 1 + end

	i = sp.closeParen + 1
	if i == len(s) || s[i] != '.' {
		return sp, NoPeriod
	}
	for _, r := range s[i+1:] {
		if !isSpace(r) {
			return sp, TrailingText
		}
	}
	return sp, OK
}

// isSpace is unicode.IsSpace plus the ASCII separators U+001C..U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
