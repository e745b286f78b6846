// Package translate implements the code translator: given a payload token
// and which code table it belongs to, resolve it to a canonical name (or
// value), falling back to the raw token on a table miss.
package translate

import (
	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
)

// Kind selects which code table a token is translated against.
type Kind int

const (
	// Data selects the data-code table; the token's first two characters
	// are the tag.
	Data Kind = iota
	// Command selects the command-code table; a token of five or more
	// characters beginning with 'S' has its command tag extracted from the
	// envelope shape, otherwise the whole token is the tag.
	Command
	// Client selects the client-type table; the token is already a bare
	// value (a decimal client-type id), not a tagged field.
	Client
)

// Translate resolves token against the table selected by which. asValue
// only applies to Data: when true, the substring after the two-character
// tag is returned on a hit instead of the canonical field name. On a miss,
// Translate returns the token's tag unchanged -- this is the signal the
// decoder uses to detect an unknown code.
func Translate(tables *codes.Tables, token string, which Kind, asValue bool) string {
	switch which {
	case Data:
		return translateData(tables.Data, token, asValue)
	case Command:
		return translateCommand(tables.Command, token)
	case Client:
		return translateClient(tables.Client, token)
	default:
		return token
	}
}

func translateData(table *codes.Table, token string, asValue bool) string {
	if len(token) < 2 {
		return token
	}
	tag := token[:2]
	name, ok := table.Lookup(tag)
	if !ok {
		return tag
	}
	if asValue {
		return token[2:]
	}
	return name
}

func translateCommand(table *codes.Table, token string) string {
	tag := commandTag(token)
	name, ok := table.Lookup(tag)
	if !ok {
		return tag
	}
	return name
}

// commandTag extracts the two-character command tag from a token, per the
// envelope shape "S<2-digit-station><2-char-command-tag><remainder>".
func commandTag(token string) string {
	if len(token) >= 5 && token[0] == 'S' {
		return token[3:5]
	}
	return token
}

func translateClient(table *codes.Table, token string) string {
	name, ok := table.Lookup(token)
	if !ok {
		return token
	}
	return name
}

// DataTag returns the two-character data-code tag prefix of token, without
// performing a lookup. Used by the decoder to classify a token (client
// type, password, date field, library field, item-key component) before
// deciding how to translate and store it.
func DataTag(token string) string {
	if len(token) < 2 {
		return token
	}
	return token[:2]
}
