// Package timefmt provides the wall-clock formatting used by every outcome builder.
//
// Both formats are local-time renderings of the same captured epoch-millisecond value.
// The paragraph timestamp and the "Inserted" feedback time must always be derived from
// one capture so they can never disagree.
package timefmt

import "time"

// FormatLocalTimestamp renders an epoch-millisecond value as "YYYY-MM-DD HH:mm (local)"
// in the local timezone. No offset field is included: the contract is "local to whoever
// later reads it", not a portable instant.
func FormatLocalTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04") + " (local)"
}

// FormatLocalTimeHHmm renders an epoch-millisecond value as "HH:mm" on the same local
// basis as FormatLocalTimestamp.
func FormatLocalTimeHHmm(ms int64) string {
	return time.UnixMilli(ms).Local().Format("15:04")
}
