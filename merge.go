package coinledger

// mergePageSize is how many rows are pulled from a source whenever its
// buffer runs dry. Pages bound memory for large ledgers while keeping the
// number of round trips to storage low.
const mergePageSize = 250

// TradeCursor is a forward-only, timestamp-ordered view over persisted
// trades. Fetch returns up to n decoded trades; an empty slice means the
// cursor is exhausted. A row that cannot be decoded surfaces as a
// *DeserializationError and poisons the cursor.
type TradeCursor interface {
	Fetch(n int) ([]Trade, error)
	Close() error
}

// EventCursor is the history-event counterpart of TradeCursor.
type EventCursor interface {
	Fetch(n int) ([]HistoryEvent, error)
	Close() error
}

// entry is an element of the merged chronological sequence: either a Trade
// or a HistoryEvent, compared by normalized (second) timestamp.
type entry interface {
	when() Timestamp
}

// merger performs a streaming external merge of the two ordered sources.
// Each side keeps a small buffer that is refilled with the next page only
// once it empties, not on every pop, so I/O stays batched.
type merger struct {
	trades TradeCursor
	events EventCursor

	tradeBuf []Trade
	eventBuf []HistoryEvent

	tradesDone bool
	eventsDone bool
}

func newMerger(trades TradeCursor, events EventCursor) *merger {
	return &merger{trades: trades, events: events}
}

func (m *merger) refill() error {
	if len(m.tradeBuf) == 0 && !m.tradesDone {
		page, err := m.trades.Fetch(mergePageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			m.tradesDone = true
		}
		m.tradeBuf = page
	}
	if len(m.eventBuf) == 0 && !m.eventsDone {
		page, err := m.events.Fetch(mergePageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			m.eventsDone = true
		}
		m.eventBuf = page
	}
	return nil
}

// next returns the chronologically next entry. The second return is false
// once both sources are exhausted. At equal normalized timestamps history
// events are emitted before trades; this tie-break is a pinned convention,
// see TestMergeTieBreak.
func (m *merger) next() (entry, bool, error) {
	if err := m.refill(); err != nil {
		return nil, false, err
	}

	switch {
	case len(m.eventBuf) == 0 && len(m.tradeBuf) == 0:
		return nil, false, nil
	case len(m.eventBuf) == 0:
		return m.popTrade(), true, nil
	case len(m.tradeBuf) == 0:
		return m.popEvent(), true, nil
	case m.eventBuf[0].when() <= m.tradeBuf[0].when():
		return m.popEvent(), true, nil
	default:
		return m.popTrade(), true, nil
	}
}

func (m *merger) popTrade() Trade {
	t := m.tradeBuf[0]
	m.tradeBuf = m.tradeBuf[1:]
	return t
}

func (m *merger) popEvent() HistoryEvent {
	e := m.eventBuf[0]
	m.eventBuf = m.eventBuf[1:]
	return e
}

// Close releases both underlying cursors.
func (m *merger) Close() error {
	terr := m.trades.Close()
	if eerr := m.events.Close(); eerr != nil {
		return eerr
	}
	return terr
}
