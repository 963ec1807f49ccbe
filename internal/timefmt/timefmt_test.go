package timefmt

import (
	"strings"
	"testing"
	"time"
)

func TestFormatLocalTimestamp(t *testing.T) {
	ms := time.Date(2024, 1, 15, 9, 30, 45, 0, time.Local).UnixMilli()
	got := FormatLocalTimestamp(ms)
	if got != "2024-01-15 09:30 (local)" {
		t.Errorf("FormatLocalTimestamp = %q, want %q", got, "2024-01-15 09:30 (local)")
	}
}

func TestFormatLocalTimestampSuffix(t *testing.T) {
	if !strings.HasSuffix(FormatLocalTimestamp(0), " (local)") {
		t.Error("timestamp missing ' (local)' suffix")
	}
}

func TestFormatLocalTimeHHmm(t *testing.T) {
	ms := time.Date(2024, 6, 1, 23, 5, 0, 0, time.Local).UnixMilli()
	got := FormatLocalTimeHHmm(ms)
	if got != "23:05" {
		t.Errorf("FormatLocalTimeHHmm = %q, want %q", got, "23:05")
	}
}

// Both formats derive from the same ms value, so the HH:mm fields must agree.
func TestFormatsAgree(t *testing.T) {
	cases := []int64{
		0,
		time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local).UnixMilli(),
		time.Date(2030, 12, 31, 0, 0, 59, 0, time.Local).UnixMilli(),
	}
	for _, ms := range cases {
		full := FormatLocalTimestamp(ms)
		hhmm := FormatLocalTimeHHmm(ms)
		if !strings.Contains(full, " "+hhmm+" ") {
			t.Errorf("HH:mm %q not embedded in full timestamp %q for ms=%d", hhmm, full, ms)
		}
	}
}
