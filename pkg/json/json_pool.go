// Package json provides a pooled JSON encoding helper used by the record
// type's custom MarshalJSON: a single global buffer pool, which
// SetPoolingEnabled can switch off, plus a goccy/go-json passthrough.
package json

import (
	"bytes"
	"sync"
	"sync/atomic"

	gojson "github.com/goccy/go-json"
)

// JSONPool manages a pooled scratch buffer for building JSON output.
type JSONPool struct {
	bufferPool sync.Pool
}

// Global JSON pool instance
var globalPool = &JSONPool{
	bufferPool: sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 4096))
		},
	},
}

// poolingEnabled gates GetBuffer/PutBuffer's use of globalPool. It is set
// once at startup from config.RunConfig.Performance.EnablePools; disabling
// it makes every buffer fresh garbage instead of reused memory, which is
// what a caller isolating GC behavior during debugging wants.
var poolingEnabled int32 = 1

// SetPoolingEnabled toggles whether GetBuffer/PutBuffer actually pool
// buffers or hand out/discard a fresh one every call.
func SetPoolingEnabled(enabled bool) {
	if enabled {
		atomic.StoreInt32(&poolingEnabled, 1)
	} else {
		atomic.StoreInt32(&poolingEnabled, 0)
	}
}

// GetBuffer gets a pooled bytes.Buffer, or a fresh one if pooling is
// disabled.
func GetBuffer() *bytes.Buffer {
	if atomic.LoadInt32(&poolingEnabled) == 0 {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	}
	buf := globalPool.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool, or discards it if pooling is
// disabled.
func PutBuffer(buf *bytes.Buffer) {
	if atomic.LoadInt32(&poolingEnabled) == 0 {
		return
	}
	if buf.Cap() > 1024*1024 { // Don't pool very large buffers
		return
	}
	globalPool.bufferPool.Put(buf)
}

// Marshal is a high-performance drop-in replacement for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	// Use goccy/go-json for better performance
	return gojson.Marshal(v)
}
