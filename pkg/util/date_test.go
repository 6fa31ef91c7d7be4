package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatDate(got) != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestYearStartAndStamp(t *testing.T) {
	ts := time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC)
	if got := YearStart(ts); !got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected year start %v", got)
	}
	if got := FormatStamp(ts); got != "20240715" {
		t.Fatalf("unexpected stamp %s", got)
	}
}

func TestBarTime(t *testing.T) {
	for interval, want := range map[string]bool{"5m": true, "30m": true, "1h": true, "1d": false, "1wk": false, "1mo": false} {
		if got := IsIntraday(interval); got != want {
			t.Fatalf("IsIntraday(%q) = %v", interval, got)
		}
	}

	loc := time.FixedZone("HKT", 8*3600)
	ts := time.Date(2024, 10, 16, 9, 35, 0, 0, loc)
	s := FormatBarTime(ts, true)
	if s != "2024-10-16 09:35" {
		t.Fatalf("unexpected intraday format %s", s)
	}
	got, err := ParseBarTime(s, loc)
	if err != nil || !got.Equal(ts) {
		t.Fatalf("round trip failed: %v %v", got, err)
	}

	if s := FormatBarTime(ts, false); s != "2024-10-16" {
		t.Fatalf("unexpected daily format %s", s)
	}
	got, err = ParseBarTime("2024-10-16", nil)
	if err != nil || !got.Equal(time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected daily parse %v %v", got, err)
	}
}
