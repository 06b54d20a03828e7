package coinledger

import "testing"

func TestEventDirection(t *testing.T) {
	tests := []struct {
		name    string
		typ     EventType
		subtype EventSubtype
		want    Direction
		ok      bool
	}{
		{"deposit asset collateral", EventTypeDeposit, SubtypeDepositAsset, DirectionNeutral, true},
		{"remove asset collateral", EventTypeWithdrawal, SubtypeRemoveAsset, DirectionNeutral, true},
		{"fee", EventTypeTrade, SubtypeFee, DirectionOut, true},
		{"spend subtype", EventTypeTrade, SubtypeSpend, DirectionOut, true},
		{"receive subtype", EventTypeTrade, SubtypeReceive, DirectionIn, true},
		{"staking reward", EventTypeStaking, SubtypeReward, DirectionIn, true},
		{"plain receive", EventTypeReceive, SubtypeNone, DirectionIn, true},
		{"plain deposit", EventTypeDeposit, SubtypeNone, DirectionIn, true},
		{"plain staking", EventTypeStaking, SubtypeNone, DirectionIn, true},
		{"plain spend", EventTypeSpend, SubtypeNone, DirectionOut, true},
		{"plain withdrawal", EventTypeWithdrawal, SubtypeNone, DirectionOut, true},
		{"informational", EventTypeInformational, SubtypeNone, DirectionNeutral, true},
		{"empty subtype falls back to type", EventTypeReceive, "", DirectionIn, true},
		{"unknown type", EventType("mystery"), SubtypeNone, DirectionNeutral, false},
		{"unknown subtype", EventTypeTrade, EventSubtype("mystery"), DirectionNeutral, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := HistoryEvent{Type: tc.typ, Subtype: tc.subtype}
			got, ok := e.Direction()
			if got != tc.want || ok != tc.ok {
				t.Errorf("Direction() = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestEventWhenNormalizesToSeconds(t *testing.T) {
	e := HistoryEvent{Timestamp: 1700000000500}
	if got := e.when(); got != 1700000000 {
		t.Errorf("when() = %d, want 1700000000", got)
	}
}
