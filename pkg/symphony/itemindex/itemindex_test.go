package itemindex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_PutAndLookup(t *testing.T) {
	idx := New()
	key := Key("2161659", "47", "2")
	idx.Put(key, "31221023069607")

	barcode, ok := idx.Lookup(Key("2161659", "47", "2"))
	require.True(t, ok)
	assert.Equal(t, "31221023069607", barcode)
}

func TestIndex_LookupMiss(t *testing.T) {
	idx := New()
	_, ok := idx.Lookup(Key("no", "such", "key"))
	assert.False(t, ok)
}

func TestKey_TrailingPipe(t *testing.T) {
	assert.Equal(t, "2161659|47|2|", Key("2161659", "47", "2"))
}

func TestLoadFrom(t *testing.T) {
	data := "2161659|47|2|31221023069607  \n9999999|1|1|31221000000000\n"
	idx, err := LoadFrom(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	barcode, ok := idx.Lookup(Key("2161659", "47", "2"))
	require.True(t, ok)
	assert.Equal(t, "31221023069607", barcode)
}

func TestLoadFrom_SkipsMalformedLines(t *testing.T) {
	data := "2161659|47|2|31221023069607\nnot enough fields\n"
	idx, err := LoadFrom(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}
