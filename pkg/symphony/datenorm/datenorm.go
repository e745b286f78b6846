// Package datenorm normalises the handful of timestamp shapes that appear
// in Symphony history lines and date-valued data-code fields into a single
// canonical form.
package datenorm

import (
	"strconv"
	"time"

	stringpool "github.com/sdsymphony/hist2json/pkg/strings"
)

// Clock abstracts the current time so that TODAY resolution stays
// deterministic under test instead of reading time.Now() directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock, backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// neverSentinel is the canonical date substituted for the literal "NEVER"
// supplement recognised by the original decoder for fields such as
// never-expiring holds.
const neverSentinel = "2040-01-01"

// Normalize canonicalises s using the system clock for TODAY resolution.
func Normalize(s string) string {
	return NormalizeWithClock(s, SystemClock{})
}

// NormalizeWithClock canonicalises s, trying each recognised shape in turn
// and returning the first match. An unrecognised or empty input yields the
// empty string; nothing here ever panics or returns an error, matching the
// decoder's tolerance for malformed field values.
func NormalizeWithClock(s string, clock Clock) string {
	if s == "" {
		return ""
	}

	switch s {
	case "TODAY":
		return clock.Now().Format("2006-01-02")
	case "NEVER":
		return neverSentinel
	}

	if ok := isCanonical(s); ok {
		return s
	}
	if out, ok := parseHeaderStyle(s); ok {
		return out
	}
	if out, ok := parseCompactDateTime(s); ok {
		return out
	}
	if out, ok := parseSlashDateTime(s); ok {
		return out
	}
	if out, ok := parseSlashDate(s); ok {
		return out
	}
	return ""
}

// parseHeaderStyle matches the 21-character history-line header
// "E<14-digit-timestamp><4-digit-station>R ".
func parseHeaderStyle(s string) (string, bool) {
	if len(s) != 21 || s[0] != 'E' || s[19] != 'R' || s[20] != ' ' {
		return "", false
	}
	return formatCompact(s[1:15])
}

// parseCompactDateTime matches a bare 14-digit YYYYMMDDhhmmss value.
func parseCompactDateTime(s string) (string, bool) {
	if len(s) != 14 || !allDigits(s) {
		return "", false
	}
	return formatCompact(s)
}

func formatCompact(digits string) (string, bool) {
	year := digits[0:4]
	month := digits[4:6]
	day := digits[6:8]
	hour := digits[8:10]
	minute := digits[10:12]
	second := digits[12:14]

	if !validDate(year, month, day) {
		return "", false
	}

	b := stringpool.NewBuilder(19)
	b.WriteString(year)
	b.WriteByte('-')
	b.WriteString(month)
	b.WriteByte('-')
	b.WriteString(day)
	b.WriteByte(' ')
	b.WriteString(hour)
	b.WriteByte(':')
	b.WriteString(minute)
	b.WriteByte(':')
	b.WriteString(second)
	return stringpool.Clone(b.String()), true
}

// parseSlashDateTime matches "MM/DD/YYYY,H:MM AM/PM"; the time portion is
// discarded in the canonical output.
func parseSlashDateTime(s string) (string, bool) {
	comma := indexByte(s, ',')
	if comma < 0 {
		return "", false
	}
	return parseSlashDate(s[:comma])
}

// parseSlashDate matches "M/D/YYYY" or "MM/DD/YYYY".
func parseSlashDate(s string) (string, bool) {
	first := indexByte(s, '/')
	if first < 0 {
		return "", false
	}
	second := indexByte(s[first+1:], '/')
	if second < 0 {
		return "", false
	}
	second += first + 1

	monthStr := s[:first]
	dayStr := s[first+1 : second]
	yearStr := s[second+1:]

	if len(monthStr) == 0 || len(monthStr) > 2 || len(dayStr) == 0 || len(dayStr) > 2 || len(yearStr) != 4 {
		return "", false
	}
	if !allDigits(monthStr) || !allDigits(dayStr) || !allDigits(yearStr) {
		return "", false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return "", false
	}

	monthPadded := pad2(month)
	dayPadded := pad2(day)
	if !validDate(yearStr, monthPadded, dayPadded) {
		return "", false
	}

	b := stringpool.NewBuilder(10)
	b.WriteString(yearStr)
	b.WriteByte('-')
	b.WriteString(monthPadded)
	b.WriteByte('-')
	b.WriteString(dayPadded)
	return stringpool.Clone(b.String()), true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func validDate(year, month, day string) bool {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return false
	}
	if len(year) != 4 || !allDigits(year) {
		return false
	}
	return true
}

// isCanonical reports whether s is already "YYYY-MM-DD" or
// "YYYY-MM-DD HH:MM:SS", so that re-normalising an already-canonical value
// is a no-op rather than falling through to empty.
func isCanonical(s string) bool {
	if len(s) != 10 && len(s) != 19 {
		return false
	}
	if !allDigits(s[0:4]) || s[4] != '-' || !allDigits(s[5:7]) || s[7] != '-' || !allDigits(s[8:10]) {
		return false
	}
	if len(s) == 10 {
		return true
	}
	return s[10] == ' ' && allDigits(s[11:13]) && s[13] == ':' && allDigits(s[14:16]) && s[16] == ':' && allDigits(s[17:19])
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

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
