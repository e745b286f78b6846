// Package itemindex loads and queries the optional item barcode index: a
// mapping from a composite catalog/call-sequence/copy-number key to a
// physical item barcode. Production indexes run past a million entries, so
// the key bytes are carved out of an arena rather than allocated one string
// at a time.
package itemindex

import (
	"bufio"
	"io"
	"os"

	"github.com/sdsymphony/hist2json/pkg/histerrors"
	"github.com/sdsymphony/hist2json/pkg/pool"
	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// arenaChunkSize and maxArenas bound the index to roughly 1GB of key
// storage (64 arenas * 16MB) before falling back to direct allocation,
// comfortably past the ~1.6M entries observed in production.
const (
	arenaChunkSize = 16 * 1024 * 1024
	maxArenas      = 64
)

// Index is a read-only-after-build mapping from composite item key to
// barcode.
type Index struct {
	entries map[string]string
	arena   *pool.ArenaPool
}

// New returns an empty index ready for Put calls during loading.
func New() *Index {
	return &Index{
		entries: make(map[string]string),
		arena:   pool.NewArenaPool(arenaChunkSize, maxArenas),
	}
}

// Key builds the composite lookup key from its three parts, in the
// trailing-pipe form the index file and the decoder's enrichment step both
// use: "catalog_key|call_seq|copy_num|".
func Key(catalogKey, callSeq, copyNum string) string {
	n := len(catalogKey) + len(callSeq) + len(copyNum) + 3
	b := stringpool.NewBuilder(n)
	b.WriteString(catalogKey)
	b.WriteByte('|')
	b.WriteString(callSeq)
	b.WriteByte('|')
	b.WriteString(copyNum)
	b.WriteByte('|')
	return b.String()
}

// Put inserts a barcode for the given composite key. The key bytes are
// copied into an arena rather than retaining the caller's string, so
// callers may reuse their key-building buffer freely.
func (idx *Index) Put(key, barcode string) {
	buf := idx.arena.Alloc(len(key))
	copy(buf, key)
	internedKey := stringpool.BytesToString(buf)
	idx.entries[internedKey] = barcode
}

// Lookup returns the barcode for a composite key and whether it was found.
func (idx *Index) Lookup(key string) (string, bool) {
	barcode, ok := idx.entries[key]
	return barcode, ok
}

// Len reports the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Load reads a pipe-delimited item-index file
// ("catalog_key|call_seq|copy_num|barcode", one entry per line) from path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, histerrors.Wrap(err, histerrors.ErrorTypeConfig, "failed to open item index").
			WithDetail("path", path)
	}
	defer f.Close()

	idx, err := LoadFrom(f)
	if err != nil {
		return nil, histerrors.Wrap(err, histerrors.ErrorTypeConfig, "failed to parse item index").
			WithDetail("path", path)
	}
	return idx, nil
}

// LoadFrom parses r as a pipe-delimited item-index stream.
func LoadFrom(r io.Reader) (*Index, error) {
	idx := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := stringpool.Split(line, "|")
		if len(parts) < 4 {
			continue
		}

		key := Key(parts[0], parts[1], parts[2])
		barcode := stringpool.TrimSpace(parts[3])
		idx.Put(key, barcode)
	}

	return idx, scanner.Err()
}
