package datenorm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestNormalize_SlashDate(t *testing.T) {
	assert.Equal(t, "2024-04-11", Normalize("4/11/2024"))
	assert.Equal(t, "2024-04-11", Normalize("04/11/2024"))
}

func TestNormalize_SlashDateTime(t *testing.T) {
	assert.Equal(t, "2024-04-11", Normalize("04/11/2024,5:30 PM"))
}

func TestNormalize_CompactDateTime(t *testing.T) {
	assert.Equal(t, "2023-10-10 05:10:08", Normalize("20231010051008"))
}

func TestNormalize_HeaderStyle(t *testing.T) {
	assert.Equal(t, "2023-10-10 05:10:08", Normalize("E202310100510083031R "))
}

func TestNormalize_EmptyAndUnrecognized(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("not a date"))
	assert.Equal(t, "", Normalize("13/45/2024"))
}

func TestNormalize_Today(t *testing.T) {
	clock := fixedClock{t: time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2026-08-06", NormalizeWithClock("TODAY", clock))
}

func TestNormalize_Never(t *testing.T) {
	assert.Equal(t, "2040-01-01", Normalize("NEVER"))
}

func TestNormalize_Idempotent(t *testing.T) {
	dateOnly := Normalize("04/11/2024")
	assert.Equal(t, dateOnly, Normalize(dateOnly))

	dateTime := Normalize("20231010051008")
	assert.Equal(t, dateTime, Normalize(dateTime))
}
