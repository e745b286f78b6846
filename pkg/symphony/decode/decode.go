// Package decode implements the record decoder: the central state machine
// that turns one tokenised history line into a decoded record.
package decode

import (
	"github.com/sdsymphony/hist2json/pkg/metrics"
	"github.com/sdsymphony/hist2json/pkg/symphony/codes"
	"github.com/sdsymphony/hist2json/pkg/symphony/datenorm"
	"github.com/sdsymphony/hist2json/pkg/symphony/itemindex"
	"github.com/sdsymphony/hist2json/pkg/symphony/record"
	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
	"github.com/sdsymphony/hist2json/pkg/symphony/tokenizer"
	"github.com/sdsymphony/hist2json/pkg/symphony/translate"
)

// clientTypeTag is the data-code tag carrying the originating client's
// numeric type id.
const clientTypeTag = "dC"

// passwordTag is the data-code tag redacted unconditionally.
const passwordTag = "Uf"

// Item-key component tags; all three must be seen before a lookup fires.
const (
	catalogKeyTag = "tJ"
	callSeqTag    = "tL"
	copyNumTag    = "IS"
)

// dateTags are data-code tags always treated as date/time-valued,
// regardless of their canonical name.
var dateTags = map[string]bool{
	"UK": true,
	"HB": true,
	"UD": true,
	"UZ": true,
	"CO": true,
}

// libraryTags are data-code tags always treated as library-branch-valued,
// regardless of their canonical name.
var libraryTags = map[string]bool{
	"FE": true,
	"FW": true,
	"HO": true,
	"nu": true,
}

// Decoder holds the read-only lookup state shared across every line in a
// run: the code tables, the optional item index, the clock used for TODAY
// resolution, and the command post-processor table.
type Decoder struct {
	Tables         *codes.Tables
	Items          *itemindex.Index
	Clock          datenorm.Clock
	PostProcessors map[string]PostProcessor
}

// New returns a Decoder wired to tables and items (items may be nil to
// disable item-id enrichment).
func New(tables *codes.Tables, items *itemindex.Index) *Decoder {
	return &Decoder{
		Tables:         tables,
		Items:          items,
		Clock:          datenorm.SystemClock{},
		PostProcessors: defaultPostProcessors(),
	}
}

// itemKeyParts accumulates the three composite item-key components seen
// across a single line's payload loop.
type itemKeyParts struct {
	catalogKey string
	callSeq    string
	copyNum    string
	haveCat    bool
	haveSeq    bool
	haveCopy   bool
}

func (p *itemKeyParts) ready() bool {
	return p.haveCat && p.haveSeq && p.haveCopy
}

// Decode converts a single raw history line into a record. lineNum feeds
// the missing-codes journal. A non-nil error means the header was
// unparseable and the line must be skipped with no output. The returned
// int is the number of unrecognised data codes encountered while decoding
// the line.
func (d *Decoder) Decode(line string, lineNum int, journal *Journal) (*record.Record, int, error) {
	tok := tokenizer.Tokenize(line)

	timestamp := datenorm.NormalizeWithClock(tok.Header, d.Clock)
	if timestamp == "" {
		return nil, 0, errMalformedHeader
	}

	rec := record.New()
	rec.Set("timestamp", timestamp)

	commandCode := translate.Translate(d.Tables, tok.CommandTag, translate.Command, false)
	rec.Set("command_code", commandCode)

	missing := 0
	var itemKey itemKeyParts

	for _, token := range tok.Payload {
		if isSentinel(token) {
			continue
		}
		if len(token) < 2 {
			continue
		}

		tag := translate.DataTag(token)
		value := token[2:]

		switch {
		case tag == clientTypeTag:
			clientType := translate.Translate(d.Tables, value, translate.Client, false)
			rec.Set("client_type", clientType)

		case tag == passwordTag:
			rec.Set("user_pin", "xxxxx")

		case tag == catalogKeyTag:
			itemKey.catalogKey = value
			itemKey.haveCat = true
			d.resolveItemKey(rec, &itemKey)

		case tag == callSeqTag:
			itemKey.callSeq = value
			itemKey.haveSeq = true
			d.resolveItemKey(rec, &itemKey)

		case tag == copyNumTag:
			itemKey.copyNum = value
			itemKey.haveCopy = true
			d.resolveItemKey(rec, &itemKey)

		default:
			name, known := d.Tables.Data.Lookup(tag)
			if !known {
				rec.Set("data_code_"+tag, value)
				journal.Add(lineNum, tag)
				missing++
				continue
			}

			if isDateField(tag, name) {
				value = datenorm.NormalizeWithClock(value, d.Clock)
			}
			if isLibraryField(tag, name) {
				value = stripLibraryPrefix(value)
			}
			rec.Set(name, value)
		}
	}

	if pp, ok := d.PostProcessors[commandCode]; ok {
		pp(rec, commandCode, timestamp)
	}

	return rec, missing, nil
}

// resolveItemKey consults the item index once all three composite-key
// components have been seen on this line. A miss is not an error -- the
// record is emitted without item_id.
func (d *Decoder) resolveItemKey(rec *record.Record, parts *itemKeyParts) {
	if d.Items == nil || !parts.ready() {
		return
	}
	key := itemindex.Key(parts.catalogKey, parts.callSeq, parts.copyNum)
	barcode, ok := d.Items.Lookup(key)
	if !ok {
		metrics.ItemIndexLookups.WithLabelValues("miss").Inc()
		return
	}
	metrics.ItemIndexLookups.WithLabelValues("hit").Inc()
	rec.Set("item_id", barcode)
}

// isSentinel reports whether token is structural noise: an empty field or
// the terminal "O"/"O<digits>" marker.
func isSentinel(token string) bool {
	if token == "" {
		return true
	}
	if token[0] != 'O' {
		return false
	}
	for i := 1; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}

func isDateField(tag, canonicalName string) bool {
	if dateTags[tag] {
		return true
	}
	return stringpool.HasPrefix(canonicalName, "date_") ||
		stringpool.HasSuffix(canonicalName, "_activity") ||
		stringpool.HasSuffix(canonicalName, "_expires") ||
		stringpool.HasSuffix(canonicalName, "_granted")
}

func isLibraryField(tag, canonicalName string) bool {
	if libraryTags[tag] {
		return true
	}
	return stringpool.Contains(canonicalName, "library")
}

// stripLibraryPrefix removes a leading "EPL" branch-system prefix if
// present.
func stripLibraryPrefix(value string) string {
	if stringpool.HasPrefix(value, "EPL") {
		return value[3:]
	}
	return value
}
