package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_MergeNormalizesDataCodes(t *testing.T) {
	table := NewTable(true)
	table.Merge("NQ", "Item ID")

	v, ok := table.Lookup("NQ")
	require.True(t, ok)
	assert.Equal(t, "item_id", v)
}

func TestTable_MergePreservesCommandCodeCasing(t *testing.T) {
	table := NewTable(false)
	table.Merge("EV", "Discharge Item")

	v, ok := table.Lookup("EV")
	require.True(t, ok)
	assert.Equal(t, "Discharge Item", v)
}

func TestTable_MergeIsIdempotent(t *testing.T) {
	table := NewTable(true)
	table.Merge("NQ", "Item ID")
	before := table.Len()
	v1, _ := table.Lookup("NQ")

	table.Merge("NQ", "Item ID")
	after := table.Len()
	v2, _ := table.Lookup("NQ")

	assert.Equal(t, before, after)
	assert.Equal(t, v1, v2)
}

func TestTable_LookupMiss(t *testing.T) {
	table := NewTable(true)
	_, ok := table.Lookup("ZZ")
	assert.False(t, ok)
}

func TestLoadFrom(t *testing.T) {
	data := "NQ|Item ID|\nEV|Discharge Item|\n"
	table := NewTable(true)
	require.NoError(t, LoadFrom(strings.NewReader(data), table))

	v, ok := table.Lookup("NQ")
	require.True(t, ok)
	assert.Equal(t, "item_id", v)
	assert.Equal(t, 2, table.Len())
}

func TestLoadFrom_SkipsMalformedLines(t *testing.T) {
	data := "NQ|Item ID|\nmalformed line with no pipes\nEV|Discharge Item|\n"
	table := NewTable(true)
	require.NoError(t, LoadFrom(strings.NewReader(data), table))
	assert.Equal(t, 2, table.Len())
}

func TestExtras(t *testing.T) {
	extras := Extras()
	table := NewTable(true)
	table.MergeExtras(extras)

	v, ok := table.Lookup("uF")
	require.True(t, ok)
	assert.Equal(t, "user_first_name", v)

	v, ok = table.Lookup("P7")
	require.True(t, ok)
	assert.Equal(t, "circ_rule", v)
}
