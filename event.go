package coinledger

import "github.com/shopspring/decimal"

// EventType is the coarse classification of a history event.
type EventType string

const (
	EventTypeReceive       EventType = "receive"
	EventTypeSpend         EventType = "spend"
	EventTypeDeposit       EventType = "deposit"
	EventTypeWithdrawal    EventType = "withdrawal"
	EventTypeTrade         EventType = "trade"
	EventTypeStaking       EventType = "staking"
	EventTypeInformational EventType = "informational"
)

// EventSubtype refines an EventType. The subtype, not the type, carries the
// balance semantics whenever it is set.
type EventSubtype string

const (
	SubtypeNone         EventSubtype = "none"
	SubtypeSpend        EventSubtype = "spend"
	SubtypeReceive      EventSubtype = "receive"
	SubtypeFee          EventSubtype = "fee"
	SubtypeReward       EventSubtype = "reward"
	SubtypeDepositAsset EventSubtype = "deposit asset"
	SubtypeRemoveAsset  EventSubtype = "remove asset"
)

// Direction states how an event moves an asset's balance: in (credit),
// out (debit), or neutral (no net exposure change, e.g. the collateral legs
// of a vault rebalance).
type Direction int

const (
	DirectionNeutral Direction = iota
	DirectionIn
	DirectionOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	}
	return "neutral"
}

// HistoryEvent is one leg of a generalized ledger action. Events sharing an
// EventIdentifier are legs of the same logical action (a swap's spend,
// receive and fee legs). Amount is a non-negative magnitude; Direction
// decides its sign during replay. Events are read-only to this engine.
type HistoryEvent struct {
	ID              int64
	EventIdentifier string
	SequenceIndex   int
	Timestamp       TimestampMS
	Location        string
	Asset           Asset
	Amount          decimal.Decimal
	Type            EventType
	Subtype         EventSubtype
	Notes           string
}

// when implements entry, normalizing milliseconds down to seconds.
func (e HistoryEvent) when() Timestamp { return e.Timestamp.ToSec() }

// Direction derives the balance direction from the type/subtype combination.
// The second return is false for combinations this engine cannot classify;
// the store treats those as deserialization failures rather than guessing.
func (e HistoryEvent) Direction() (Direction, bool) {
	switch e.Subtype {
	case SubtypeDepositAsset, SubtypeRemoveAsset:
		return DirectionNeutral, true
	case SubtypeFee, SubtypeSpend:
		return DirectionOut, true
	case SubtypeReceive, SubtypeReward:
		return DirectionIn, true
	case SubtypeNone, "":
		switch e.Type {
		case EventTypeReceive, EventTypeDeposit, EventTypeStaking:
			return DirectionIn, true
		case EventTypeSpend, EventTypeWithdrawal:
			return DirectionOut, true
		case EventTypeInformational:
			return DirectionNeutral, true
		}
	}
	return DirectionNeutral, false
}
