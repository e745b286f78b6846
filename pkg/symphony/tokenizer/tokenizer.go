// Package tokenizer splits a raw Symphony history line into its header and
// payload fields, decomposing the command envelope carried in the second
// caret-delimited token.
package tokenizer

import (
	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// Line holds the tokenised pieces of a single history-log line.
type Line struct {
	// Header is token 0, the fixed-width event header.
	Header string
	// Station is the two-digit station code extracted from the command
	// envelope, empty if the envelope was malformed.
	Station string
	// CommandTag is the two-character command-code tag extracted from the
	// command envelope.
	CommandTag string
	// Payload holds every remaining data-code-tagged token, with the
	// envelope's remainder re-prepended as the first entry so that
	// downstream data-code decoding sees a uniform stream.
	Payload []string
}

// Tokenize splits line on '^' and decomposes the command envelope carried
// in the second token. Empty tokens and a trailing "O"/"O<digits>" sentinel
// are left in Payload for the decoder to skip, matching the structural
// noise the format is known to carry.
func Tokenize(line string) Line {
	parts := stringpool.Split(line, "^")

	l := Line{}
	if len(parts) > 0 {
		l.Header = parts[0]
	}

	if len(parts) > 1 {
		station, tag, remainder := decomposeEnvelope(parts[1])
		l.Station = station
		l.CommandTag = tag
		if remainder != "" {
			l.Payload = append(l.Payload, remainder)
		}
	}

	if len(parts) > 2 {
		l.Payload = append(l.Payload, parts[2:]...)
	}

	return l
}

// decomposeEnvelope splits a command envelope token "S<station><cmd><rest>"
// into its station code, command tag, and remainder. Tokens that do not
// match the S-prefixed shape are treated as a bare command tag with no
// remainder, per the code translator's command fallback rule (§4.4).
func decomposeEnvelope(token string) (station, tag, remainder string) {
	if len(token) >= 5 && token[0] == 'S' {
		return token[1:3], token[3:5], token[5:]
	}
	return "", token, ""
}
