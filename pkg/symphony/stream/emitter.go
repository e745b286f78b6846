package stream

import (
	"io"

	"github.com/sdsymphony/hist2json/pkg/symphony/record"
)

// Emitter receives decoded records as the driver produces them and handles
// the final framing at end-of-stream.
type Emitter interface {
	Emit(rec *record.Record) error
	Finish() error
}

// ArrayEmitter writes records as a single JSON array: '[' before the first
// record, ',' between records, ']' once the stream ends. No trailing comma
// is ever written, including for a zero-record run.
type ArrayEmitter struct {
	w       io.Writer
	started bool
}

// NewArrayEmitter returns an Emitter that writes a JSON array to w.
func NewArrayEmitter(w io.Writer) *ArrayEmitter {
	return &ArrayEmitter{w: w}
}

// Emit writes rec into the array, opening the bracket on the first call.
func (e *ArrayEmitter) Emit(rec *record.Record) error {
	if !e.started {
		if _, err := e.w.Write([]byte{'['}); err != nil {
			return err
		}
		e.started = true
	} else {
		if _, err := e.w.Write([]byte{','}); err != nil {
			return err
		}
	}

	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

// Finish closes the array, opening it first if no record was ever emitted.
func (e *ArrayEmitter) Finish() error {
	if !e.started {
		if _, err := e.w.Write([]byte{'['}); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{']'})
	return err
}

// DocumentEmitter writes one JSON object per line, newline-delimited, with
// no surrounding array -- the shape a document store's bulk loader expects.
type DocumentEmitter struct {
	w io.Writer
}

// NewDocumentEmitter returns an Emitter that writes newline-delimited JSON
// to w.
func NewDocumentEmitter(w io.Writer) *DocumentEmitter {
	return &DocumentEmitter{w: w}
}

// Emit writes rec as its own JSON object followed by a newline.
func (e *DocumentEmitter) Emit(rec *record.Record) error {
	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	_, err = e.w.Write([]byte{'\n'})
	return err
}

// Finish is a no-op for document-store mode; there is no outer framing to
// close.
func (e *DocumentEmitter) Finish() error {
	return nil
}
