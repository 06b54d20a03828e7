// Package renderer turns engine results into markdown reports.
package renderer

import (
	"time"

	coinledger "github.com/coinledger/coinledger"
)

const (
	dayFormat  = "2006-01-02"
	timeFormat = "2006-01-02 15:04:05"
)

func formatDay(ts coinledger.Timestamp) string {
	return time.Unix(int64(ts), 0).UTC().Format(dayFormat)
}

func formatTime(ts coinledger.Timestamp) string {
	return time.Unix(int64(ts), 0).UTC().Format(timeFormat)
}

func haltNote(h *coinledger.Halt) string {
	note := "Replay stopped at item " + h.ItemID + ": a spend exceeded the recorded balance. Later activity is not included."
	if h.GroupID != "" {
		note = "Replay stopped at item " + h.ItemID + " (group " + h.GroupID + "): a spend exceeded the recorded balance. Later activity is not included."
	}
	return note
}
