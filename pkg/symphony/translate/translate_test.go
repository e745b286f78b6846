package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
)

func newTestTables() *codes.Tables {
	tables := codes.NewTables()
	tables.Data.Merge("NQ", "Item ID")
	tables.Command.Merge("EV", "Discharge Item")
	tables.Client.Merge("5", "CLIENT_ONLINE_CATALOG")
	return tables
}

func TestTranslate_DataHit(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "item_id", Translate(tables, "NQ31221112079020", Data, false))
}

func TestTranslate_DataAsValue(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "31221112079020", Translate(tables, "NQ31221112079020", Data, true))
}

func TestTranslate_DataMiss(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "zZ", Translate(tables, "zZProblem", Data, false))
}

func TestTranslate_CommandEnvelopeHit(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "Discharge Item", Translate(tables, "S01EVFFADMIN", Command, false))
}

func TestTranslate_CommandBareTagHit(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "Discharge Item", Translate(tables, "EV", Command, false))
}

func TestTranslate_CommandMiss(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "ZZ", Translate(tables, "ZZ", Command, false))
}

func TestTranslate_ClientHit(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "CLIENT_ONLINE_CATALOG", Translate(tables, "5", Client, false))
}

func TestTranslate_ClientMiss(t *testing.T) {
	tables := newTestTables()
	assert.Equal(t, "99", Translate(tables, "99", Client, false))
}

func TestDataTag(t *testing.T) {
	assert.Equal(t, "NQ", DataTag("NQ31221112079020"))
	assert.Equal(t, "N", DataTag("N"))
}
