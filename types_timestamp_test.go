package coinledger

import "testing"

func TestTimestampDayStart(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		want Timestamp
	}{
		{"midnight stays", 1700006400, 1700006400},
		{"midday truncates", 1700006400 + 12*3600, 1700006400},
		{"last second of day", 1700006400 + SecondsPerDay - 1, 1700006400},
		{"first second of next day", 1700006400 + SecondsPerDay, 1700006400 + SecondsPerDay},
		{"epoch", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ts.DayStart(); got != tc.want {
				t.Errorf("DayStart(%d) = %d, want %d", tc.ts, got, tc.want)
			}
		})
	}
}

func TestTimestampMSToSec(t *testing.T) {
	tests := []struct {
		ms   TimestampMS
		want Timestamp
	}{
		{1000, 1},
		{1999, 1}, // truncates, never rounds up
		{2000, 2},
		{999, 0},
		{0, 0},
	}
	for _, tc := range tests {
		if got := tc.ms.ToSec(); got != tc.want {
			t.Errorf("ToSec(%d) = %d, want %d", tc.ms, got, tc.want)
		}
	}
}

func TestTimestampToMS(t *testing.T) {
	if got := Timestamp(1700000000).ToMS(); got != 1700000000000 {
		t.Errorf("ToMS(1700000000) = %d", got)
	}
}
