// Package rangegate implements the pre-decode timestamp range filter: a
// cheap predicate over a line's raw header that lets the streaming driver
// skip decoding lines outside a requested window entirely.
package rangegate

// Admit reports whether header falls within the half-open window
// [start, end). start and end are digit-prefix strings of
// "YYYYMMDDhhmmss", of any length >= 4; either may be empty to mean
// unbounded. A header that fails to parse always passes the gate -- the
// decoder rejects it later, so the gate errs on the side of admitting.
func Admit(header, start, end string) bool {
	extracted, ok := extractTimestamp(header)
	if !ok {
		return true
	}

	if start != "" && !allDigits(start) {
		start = ""
	}
	if end != "" && !allDigits(end) {
		end = ""
	}

	if start == "" && end == "" {
		return true
	}

	boundLen := shorterBoundLen(start, end)
	ext := truncate(extracted, boundLen)

	if start != "" {
		if ext < truncate(start, boundLen) {
			return false
		}
	}
	if end != "" {
		if !(ext < truncate(end, boundLen)) {
			return false
		}
	}
	return true
}

// extractTimestamp pulls the 14-digit timestamp from positions 1..14 of a
// history-line header.
func extractTimestamp(header string) (string, bool) {
	if len(header) < 15 || header[0] != 'E' {
		return "", false
	}
	ts := header[1:15]
	if !allDigits(ts) {
		return "", false
	}
	return ts, true
}

func shorterBoundLen(start, end string) int {
	switch {
	case start != "" && end != "":
		if len(start) < len(end) {
			return len(start)
		}
		return len(end)
	case start != "":
		return len(start)
	case end != "":
		return len(end)
	default:
		return 0
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
