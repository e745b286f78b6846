// Package textnorm implements the string normaliser used to clean up
// free-text fields pulled out of a Symphony history line before they are
// folded into code-table keys or emitted as record values.
package textnorm

import (
	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// stripSet is the fixed set of punctuation characters removed from every
// field, regardless of foldSpaces. Grounded on the worked normaliser
// scenario: "[isn't]" -> "isnt", "th*t" -> "tht", "\$tring" -> "tring",
// "(liked)" -> "liked", "until_now}" -> "until_now" -- the underscore in
// the last example survives untouched, so it is deliberately absent here.
var stripSet = map[byte]bool{
	'[':  true,
	']':  true,
	'$':  true,
	'*':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'{':  true,
	'}':  true,
	'\\': true,
}

// Clean strips the fixed punctuation set from s. When foldSpaces is false,
// case and interior/trailing whitespace are left exactly as they were. When
// true, the result is lowercased and any run of whitespace -- interior,
// leading, or trailing -- collapses to a single underscore, with leading and
// trailing runs dropped entirely.
func Clean(s string, foldSpaces bool) string {
	b := stringpool.NewBuilder(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if stripSet[c] {
			continue
		}
		b.WriteByte(c)
	}
	stripped := b.String()

	if !foldSpaces {
		return stringpool.Clone(stripped)
	}

	return foldAndLower(stripped)
}

func foldAndLower(s string) string {
	trimmed := stringpool.TrimSpace(s)
	out := stringpool.NewBuilder(len(trimmed))
	inRun := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if isWhitespace(c) {
			if !inRun {
				out.WriteByte('_')
				inRun = true
			}
			continue
		}
		inRun = false
		out.WriteByte(toLower(c))
	}
	return stringpool.Clone(out.String())
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
