// Package record defines the decoded record type: an insertion-ordered
// mapping from canonical field name to string value, with first-write-wins
// semantics for duplicate keys and a custom JSON encoding that preserves
// first-encounter key order.
package record

import (
	jsonpool "github.com/sdsymphony/hist2json/pkg/json"
)

// Record is an ordered string-to-string mapping. The zero value is not
// usable; construct with New.
type Record struct {
	keys   []string
	values map[string]string
}

// New returns an empty record ready for Set calls.
func New() *Record {
	return &Record{
		values: make(map[string]string, 16),
	}
}

// Set stores value under key if key has not been set before. It reports
// whether the write took effect -- false means a duplicate key was
// silently discarded, which is essential for the command envelope's
// station-login field (§9: first-write-wins for the command envelope's FF
// token, which would otherwise be clobbered by a later FF in the payload).
func (r *Record) Set(key, value string) bool {
	if _, exists := r.values[key]; exists {
		return false
	}
	r.keys = append(r.keys, key)
	r.values[key] = value
	return true
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key has been set.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in first-encounter order. The returned slice must
// not be mutated by the caller.
func (r *Record) Keys() []string {
	return r.keys
}

// Len reports the number of fields in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON renders the record as a JSON object with keys in
// first-encounter order. Every value is a JSON string -- decoded fields are
// never coerced to numbers or booleans, so downstream consumers can rely on
// a uniform value type. Key/value encoding and the scratch buffer both go
// through pkg/json's pooled encoder, the same one the streaming emitters
// use, so a high-volume run never allocates a fresh buffer per record.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := jsonpool.GetBuffer()
	defer jsonpool.PutBuffer(buf)

	buf.WriteByte('{')

	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := jsonpool.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := jsonpool.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}

	buf.WriteByte('}')

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
