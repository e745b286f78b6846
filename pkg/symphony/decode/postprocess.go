package decode

import "github.com/sdsymphony/hist2json/pkg/symphony/record"

// PostProcessor applies command-specific fixups to an otherwise-complete
// record. Keeping these in a table keyed by command name, rather than
// inline branches in the payload loop, is what keeps Decode itself free of
// command-specific knowledge (§9).
type PostProcessor func(rec *record.Record, commandCode, timestamp string)

// defaultPostProcessors returns the built-in post-processor table. Callers
// may extend or override it on a *Decoder before running a decode.
func defaultPostProcessors() map[string]PostProcessor {
	return map[string]PostProcessor{
		"Discharge Item": postDischargeItem,
	}
}

// postDischargeItem backfills date_of_discharge from the decoded timestamp
// when the payload carried no explicit discharge-date field.
func postDischargeItem(rec *record.Record, commandCode, timestamp string) {
	if rec.Has("date_of_discharge") {
		return
	}
	rec.Set("date_of_discharge", datePortion(timestamp))
}

// datePortion returns the "YYYY-MM-DD" prefix of a canonical timestamp,
// tolerating a date-only value with no time component.
func datePortion(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}
