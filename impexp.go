package coinledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the import/export format.
// It should remain human readable, single file and be easy to merge into a database.

type jtrade struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Location  string          `json:"location"`
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
}

// ImportTrades imports trades from 'r' in the import/export format.
//
// The format is a JSONL file, where each line is a JSON object representing
// one trade: its identifier, timestamp in seconds, location, base and quote
// asset identifiers, trade type, base amount and rate. Amounts are decimal
// strings so no precision is lost on the way in.
func ImportTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jt jtrade
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("cannot parse line for Trade import format: %q: %w", string(line), err)
		}
		typ, err := ParseTradeType(jt.Type)
		if err != nil {
			return nil, fmt.Errorf("cannot import trade %q: %w", jt.ID, err)
		}
		if jt.Base == "" || jt.Quote == "" {
			return nil, fmt.Errorf("cannot import trade %q: missing base or quote asset", jt.ID)
		}
		trades = append(trades, Trade{
			ID:         jt.ID,
			Timestamp:  Timestamp(jt.Timestamp),
			Location:   jt.Location,
			BaseAsset:  Asset(jt.Base),
			QuoteAsset: Asset(jt.Quote),
			Type:       typ,
			Amount:     jt.Amount,
			Rate:       jt.Rate,
		})
	}
	return trades, scanner.Err()
}

// ExportTrades exports trades to 'w' in the import/export format.
func ExportTrades(w io.Writer, trades []Trade) error {
	for _, t := range trades {
		jt := jtrade{
			ID:        t.ID,
			Timestamp: int64(t.Timestamp),
			Location:  t.Location,
			Base:      string(t.BaseAsset),
			Quote:     string(t.QuoteAsset),
			Type:      string(t.Type),
			Amount:    t.Amount,
			Rate:      t.Rate,
		}
		if err := writeLine(w, jt); err != nil {
			return fmt.Errorf("cannot export trade %q: %w", t.ID, err)
		}
	}
	return nil
}

type jevent struct {
	EventIdentifier string          `json:"event_identifier"`
	SequenceIndex   int             `json:"sequence_index"`
	Timestamp       int64           `json:"timestamp_ms"`
	Location        string          `json:"location"`
	Asset           string          `json:"asset"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Subtype         string          `json:"subtype,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ImportEvents imports history events from 'r' in the import/export format.
//
// Each line is one event with its millisecond timestamp, grouping identifier
// and sequence index. The numeric row ID is storage-assigned and therefore
// not part of the format.
func ImportEvents(r io.Reader) ([]HistoryEvent, error) {
	var events []HistoryEvent
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var je jevent
		if err := json.Unmarshal(line, &je); err != nil {
			return nil, fmt.Errorf("cannot parse line for HistoryEvent import format: %q: %w", string(line), err)
		}
		if je.EventIdentifier == "" {
			return nil, fmt.Errorf("cannot import history event: %q: missing event_identifier", string(line))
		}
		if je.Asset == "" {
			return nil, fmt.Errorf("cannot import history event %q: missing asset", je.EventIdentifier)
		}
		events = append(events, HistoryEvent{
			EventIdentifier: je.EventIdentifier,
			SequenceIndex:   je.SequenceIndex,
			Timestamp:       TimestampMS(je.Timestamp),
			Location:        je.Location,
			Asset:           Asset(je.Asset),
			Amount:          je.Amount,
			Type:            EventType(je.Type),
			Subtype:         EventSubtype(je.Subtype),
			Notes:           je.Notes,
		})
	}
	return events, scanner.Err()
}

// ExportEvents exports history events to 'w' in the import/export format.
func ExportEvents(w io.Writer, events []HistoryEvent) error {
	for _, e := range events {
		je := jevent{
			EventIdentifier: e.EventIdentifier,
			SequenceIndex:   e.SequenceIndex,
			Timestamp:       int64(e.Timestamp),
			Location:        e.Location,
			Asset:           string(e.Asset),
			Amount:          e.Amount,
			Type:            string(e.Type),
			Subtype:         string(e.Subtype),
			Notes:           e.Notes,
		}
		if err := writeLine(w, je); err != nil {
			return fmt.Errorf("cannot export history event %q: %w", e.EventIdentifier, err)
		}
	}
	return nil
}

type jprice struct {
	Asset     string          `json:"asset"`
	Target    string          `json:"target"`
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// ImportPrices imports cached historical prices from 'r' in the
// import/export format, one price point per line.
func ImportPrices(r io.Reader) ([]PricePoint, error) {
	var prices []PricePoint
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jp jprice
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("cannot parse line for PricePoint import format: %q: %w", string(line), err)
		}
		if jp.Asset == "" || jp.Target == "" {
			return nil, fmt.Errorf("cannot import price point: %q: missing asset or target", string(line))
		}
		prices = append(prices, PricePoint{
			Asset:     Asset(jp.Asset),
			Target:    Asset(jp.Target),
			Timestamp: Timestamp(jp.Timestamp),
			Price:     jp.Price,
		})
	}
	return prices, scanner.Err()
}

// ExportPrices exports cached historical prices to 'w' in the import/export
// format.
func ExportPrices(w io.Writer, prices []PricePoint) error {
	for _, p := range prices {
		jp := jprice{
			Asset:     string(p.Asset),
			Target:    string(p.Target),
			Timestamp: int64(p.Timestamp),
			Price:     p.Price,
		}
		if err := writeLine(w, jp); err != nil {
			return fmt.Errorf("cannot export price point %s/%s: %w", p.Asset, p.Target, err)
		}
	}
	return nil
}

func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
