package coinledger

import (
	"errors"
	"testing"
)

func tradeAt(id string, ts Timestamp) Trade {
	return Trade{ID: id, Timestamp: ts, BaseAsset: "BTC", QuoteAsset: "USD",
		Type: TradeTypeBuy, Amount: dec("1"), Rate: dec("100")}
}

func eventAt(id int64, ms TimestampMS) HistoryEvent {
	return HistoryEvent{ID: id, EventIdentifier: "grp", Timestamp: ms,
		Asset: "ETH", Amount: dec("1"), Type: EventTypeReceive, Subtype: SubtypeNone}
}

func drain(t *testing.T, m *merger) []entry {
	t.Helper()
	var out []entry
	for {
		e, ok, err := m.next()
		if err != nil {
			t.Fatalf("next() error: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestMergeChronological(t *testing.T) {
	trades := &fakeTradeCursor{trades: []Trade{tradeAt("t1", 100), tradeAt("t2", 300)}}
	events := &fakeEventCursor{events: []HistoryEvent{eventAt(1, 200_000), eventAt(2, 400_000)}}
	m := newMerger(trades, events)

	got := drain(t, m)
	want := []Timestamp{100, 200, 300, 400}
	if len(got) != len(want) {
		t.Fatalf("merged %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.when() != want[i] {
			t.Errorf("entry %d at %d, want %d", i, e.when(), want[i])
		}
	}
}

func TestMergeTieBreak(t *testing.T) {
	// An event at 100.5s and a trade at second 100 collide after
	// normalization; the event must come out first.
	trades := &fakeTradeCursor{trades: []Trade{tradeAt("t1", 100)}}
	events := &fakeEventCursor{events: []HistoryEvent{eventAt(1, 100_500)}}
	m := newMerger(trades, events)

	got := drain(t, m)
	if len(got) != 2 {
		t.Fatalf("merged %d entries, want 2", len(got))
	}
	if _, isEvent := got[0].(HistoryEvent); !isEvent {
		t.Error("at equal normalized timestamps the event must precede the trade")
	}
	if _, isTrade := got[1].(Trade); !isTrade {
		t.Error("trade must follow the tied event")
	}
}

func TestMergeRefillsOnlyEmptyBuffers(t *testing.T) {
	trades := &fakeTradeCursor{trades: []Trade{tradeAt("t1", 1), tradeAt("t2", 2), tradeAt("t3", 3)}}
	events := &fakeEventCursor{}
	m := newMerger(trades, events)

	drain(t, m)
	// One fetch fills the whole trade buffer, a second one detects
	// exhaustion. No per-pop refetching.
	if trades.fetches != 2 {
		t.Errorf("trade cursor fetched %d times, want 2", trades.fetches)
	}
}

func TestMergeAbortsOnCursorError(t *testing.T) {
	derr := &DeserializationError{Table: "trades", Row: "t2", Err: errors.New("corrupt stored tuple")}
	trades := &failingTradeCursor{trades: []Trade{tradeAt("t1", 100)}, err: derr}
	events := &fakeEventCursor{}
	m := newMerger(trades, events)

	// The first page is fine; the refill after it fails mid-stream.
	e, ok, err := m.next()
	if err != nil || !ok {
		t.Fatalf("next() = (%v, %v, %v), want the first trade", e, ok, err)
	}
	if _, _, err := m.next(); err != derr {
		t.Fatalf("next() error = %v, want the cursor's error", err)
	}
	// A poisoned cursor repeats its error on every subsequent call.
	if _, _, err := m.next(); err != derr {
		t.Fatalf("repeated next() error = %v, want the same error again", err)
	}
}

func TestMergeCloseClosesBothCursors(t *testing.T) {
	trades := &fakeTradeCursor{}
	events := &fakeEventCursor{}
	m := newMerger(trades, events)
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !trades.closed || !events.closed {
		t.Error("Close() must close both cursors")
	}
}
