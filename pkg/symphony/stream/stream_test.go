package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
	"github.com/sdsymphony/hist2json/pkg/symphony/decode"
)

func newTestDecoder() *decode.Decoder {
	tables := codes.NewTables()
	tables.Command.Merge("EV", "Discharge Item")
	tables.Data.Merge("FF", "Station Login")
	tables.Data.Merge("FE", "Station Library")
	tables.Data.Merge("Fc", "Station Login Clearance")
	tables.Data.Merge("NQ", "Item ID")
	return decode.New(tables, nil)
}

const sampleLines = "E202310100510083031R ^S01EVFFADMIN^FEEPLRIV^FcNONE^NQ31221112079020^^O00049\n" +
	"E202310110510083031R ^S01EVFFADMIN^FEEPLRIV^FcNONE^NQ31221112079021^^O00049\n"

func TestDriver_ArrayMode(t *testing.T) {
	driver := NewDriver(newTestDecoder(), "", "")
	src := NewLineSource(strings.NewReader(sampleLines), DefaultBufferSize)

	var buf bytes.Buffer
	emitter := NewArrayEmitter(&buf)

	summary, err := driver.Run(src, emitter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.RecordsDecoded)
	assert.Equal(t, int64(0), summary.RecordsSkipped)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "["))
	assert.True(t, strings.HasSuffix(out, "]"))
	assert.Equal(t, 1, strings.Count(out, "]"))
	assert.Contains(t, out, "31221112079020")
	assert.Contains(t, out, "31221112079021")
}

func TestDriver_ArrayMode_EmptyInput(t *testing.T) {
	driver := NewDriver(newTestDecoder(), "", "")
	src := NewLineSource(strings.NewReader(""), DefaultBufferSize)

	var buf bytes.Buffer
	emitter := NewArrayEmitter(&buf)

	_, err := driver.Run(src, emitter)
	require.NoError(t, err)
	assert.Equal(t, "[]", buf.String())
}

func TestDriver_DocumentMode(t *testing.T) {
	driver := NewDriver(newTestDecoder(), "", "")
	src := NewLineSource(strings.NewReader(sampleLines), DefaultBufferSize)

	var buf bytes.Buffer
	emitter := NewDocumentEmitter(&buf)

	_, err := driver.Run(src, emitter)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.False(t, strings.HasPrefix(buf.String(), "["))
}

func TestDriver_RangeGateSkipsLines(t *testing.T) {
	driver := NewDriver(newTestDecoder(), "20231011", "")
	src := NewLineSource(strings.NewReader(sampleLines), DefaultBufferSize)

	var buf bytes.Buffer
	summary, err := driver.Run(src, NewArrayEmitter(&buf))
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.RecordsDecoded)
	assert.Equal(t, int64(1), summary.LinesGated)
}

func TestDriver_SkipsMalformedLines(t *testing.T) {
	driver := NewDriver(newTestDecoder(), "", "")
	src := NewLineSource(strings.NewReader("this is not a history line\n" + sampleLines), DefaultBufferSize)

	var buf bytes.Buffer
	summary, err := driver.Run(src, NewArrayEmitter(&buf))
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.RecordsSkipped)
	assert.Equal(t, int64(2), summary.RecordsDecoded)
}
