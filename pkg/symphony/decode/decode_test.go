package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
	"github.com/sdsymphony/hist2json/pkg/symphony/itemindex"
)

func newTestDecoder(items *itemindex.Index) *Decoder {
	tables := codes.NewTables()
	tables.Command.Merge("EV", "Discharge Item")
	tables.Command.Merge("JZ", "Hold")

	tables.Data.Merge("FF", "Station Login")
	tables.Data.Merge("FE", "Station Library")
	tables.Data.Merge("Fc", "Station Login Clearance")
	tables.Data.Merge("NQ", "Item ID")
	tables.Data.Merge("UO", "User ID")
	tables.Data.Merge("HB", "Date Hold Expires")
	tables.Data.Merge("HK", "Hold Pickup Title")
	tables.Data.Merge("HO", "Hold Pickup Library")

	tables.Client.Merge("5", "CLIENT_ONLINE_CATALOG")

	return New(tables, items)
}

func TestDecode_DischargeItem(t *testing.T) {
	d := newTestDecoder(nil)
	line := "E202310100510083031R ^S01EVFFADMIN^FEEPLRIV^FcNONE^NQ31221112079020^^O00049"

	rec, missing, err := d.Decode(line, 1, NewJournal())
	require.NoError(t, err)
	assert.Equal(t, 0, missing)

	ts, _ := rec.Get("timestamp")
	assert.Equal(t, "2023-10-10 05:10:08", ts)

	cc, _ := rec.Get("command_code")
	assert.Equal(t, "Discharge Item", cc)

	lib, _ := rec.Get("station_library")
	assert.Equal(t, "RIV", lib)

	clearance, _ := rec.Get("station_login_clearance")
	assert.Equal(t, "NONE", clearance)

	itemID, _ := rec.Get("item_id")
	assert.Equal(t, "31221112079020", itemID)

	discharge, _ := rec.Get("date_of_discharge")
	assert.Equal(t, "2023-10-10", discharge)
}

func TestDecode_HoldWithPasswordAndClientType(t *testing.T) {
	d := newTestDecoder(nil)
	line := "E202304110001162995R ^S01JZFFBIBLIOCOMM^FcNONE^FEEPLRIV^UO21221023395855^Uf0490^NQ31221059760525^HB04/11/2024^HKTITLE^HOEPLRIV^dC5^^O00112^zZProblem^O0"

	journal := NewJournal()
	rec, missing, err := d.Decode(line, 7, journal)
	require.NoError(t, err)
	assert.Equal(t, 1, missing)

	pin, _ := rec.Get("user_pin")
	assert.Equal(t, "xxxxx", pin)

	expires, _ := rec.Get("date_hold_expires")
	assert.Equal(t, "2024-04-11", expires)

	pickupLib, _ := rec.Get("hold_pickup_library")
	assert.Equal(t, "RIV", pickupLib)

	clientType, _ := rec.Get("client_type")
	assert.Equal(t, "CLIENT_ONLINE_CATALOG", clientType)

	unknown, ok := rec.Get("data_code_zZ")
	require.True(t, ok)
	assert.Equal(t, "Problem", unknown)

	assert.Contains(t, journal.Entries()[7], "zZ")
}

func TestDecode_ItemEnrichmentHit(t *testing.T) {
	items := itemindex.New()
	items.Put(itemindex.Key("2161659", "47", "2"), "31221023069607")
	d := newTestDecoder(items)

	line := "E202310100510083031R ^S01EVFFADMIN^tJ2161659^tL47^IS2^^O00049"
	rec, _, err := d.Decode(line, 1, NewJournal())
	require.NoError(t, err)

	itemID, ok := rec.Get("item_id")
	require.True(t, ok)
	assert.Equal(t, "31221023069607", itemID)
}

func TestDecode_ItemEnrichmentMiss(t *testing.T) {
	items := itemindex.New()
	d := newTestDecoder(items)

	line := "E202310100510083031R ^S01EVFFADMIN^tJ9999999^tL1^IS1^^O00049"
	rec, _, err := d.Decode(line, 1, NewJournal())
	require.NoError(t, err)

	_, ok := rec.Get("item_id")
	assert.False(t, ok)
}

func TestDecode_MalformedHeader(t *testing.T) {
	d := newTestDecoder(nil)
	_, _, err := d.Decode("not a valid header at all", 1, NewJournal())
	assert.Error(t, err)
}

func TestDecode_DuplicateKeyFirstWriteWins(t *testing.T) {
	d := newTestDecoder(nil)
	line := "E202310100510083031R ^S01EVFFADMIN^FFOVERRIDE^^O00049"

	rec, _, err := d.Decode(line, 1, NewJournal())
	require.NoError(t, err)

	login, ok := rec.Get("station_login")
	require.True(t, ok)
	assert.Equal(t, "ADMIN", login)
}
