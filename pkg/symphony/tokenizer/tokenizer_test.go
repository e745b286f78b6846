package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_DischargeLine(t *testing.T) {
	line := "E202310100510083031R ^S01EVFFADMIN^FEEPLRIV^FcNONE^NQ31221112079020^^O00049"
	got := Tokenize(line)

	assert.Equal(t, "E202310100510083031R ", got.Header)
	assert.Equal(t, "01", got.Station)
	assert.Equal(t, "EV", got.CommandTag)
	assert.Equal(t, []string{
		"FFADMIN",
		"FEEPLRIV",
		"FcNONE",
		"NQ31221112079020",
		"",
		"O00049",
	}, got.Payload)
}

func TestTokenize_NoEnvelope(t *testing.T) {
	got := Tokenize("E202310100510083031R ")
	assert.Equal(t, "E202310100510083031R ", got.Header)
	assert.Equal(t, "", got.CommandTag)
	assert.Empty(t, got.Payload)
}

func TestTokenize_ShortEnvelopeFallsBackToBareTag(t *testing.T) {
	got := Tokenize("header^EV")
	assert.Equal(t, "", got.Station)
	assert.Equal(t, "EV", got.CommandTag)
	assert.Empty(t, got.Payload)
}

func TestTokenize_EmptyTokensPreserved(t *testing.T) {
	got := Tokenize("header^S01EVFFADMIN^^FcNONE")
	assert.Contains(t, got.Payload, "")
}
