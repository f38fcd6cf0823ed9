package pipeline

import (
	"errors"
	"strconv"
	"strings"
)

// ParseDailyRecord parses a comma-separated list of step counts, first day
// of the year first. Each entry is read by ParseLeadingInt, so "8500.5"
// counts as 8500. Entries without a leading integer, and negative ones, are
// skipped: "8500, x,12000,-3" yields [8500 12000].
func ParseDailyRecord(s string) []int {
	fields := strings.Split(s, ",")
	record := make([]int, 0, len(fields))
	for _, f := range fields {
		n, ok := ParseLeadingInt(f)
		if !ok || n < 0 {
			continue
		}
		record = append(record, n)
	}
	return record
}

// ParseLeadingInt reads the optionally signed decimal integer at the start
// of s after trimming whitespace, ignoring whatever follows it: "9500steps"
// is 9500 and "1.5" is 1. ok is false when s does not start with a digit.
// Values beyond the int range saturate.
func ParseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return int(v), true
}

// FormatDailyRecord is the inverse of ParseDailyRecord.
func FormatDailyRecord(record []int) string {
	parts := make([]string, len(record))
	for i, v := range record {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
