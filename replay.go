package coinledger

import "strconv"

// Halt reports the first item whose debit would have driven an asset's
// balance below zero. It is a normal, expected result — the point where the
// recorded ledger became inconsistent — not an error. None of the halting
// item's effects are applied.
type Halt struct {
	// ItemID identifies the offending trade or event.
	ItemID string
	// GroupID links the legs of one logical action: the event_identifier
	// for history events, empty for trades (trades are not grouped).
	GroupID string
}

// replayEntry applies one merged entry to the running balances, restricted
// to the assets of interest. It returns a non-nil Halt if the entry's debit
// would go negative, in which case nothing was applied.
func replayEntry(e entry, balances RunningBalances, assets assetSet) *Halt {
	switch v := e.(type) {
	case Trade:
		return replayTrade(v, balances, assets)
	case HistoryEvent:
		return replayEvent(v, balances, assets)
	}
	return nil
}

// replayTrade applies the two offsetting legs of a trade. Each leg is
// independently checked against the asset filter: a filtered-out leg is
// simply dropped. The debit feasibility check runs before the credit so a
// halting trade leaves the balances untouched.
func replayTrade(t Trade, balances RunningBalances, assets assetSet) *Halt {
	credit, debit := t.Legs()
	applyCredit := assets.contains(credit.Asset)
	applyDebit := assets.contains(debit.Asset)

	if applyDebit && balances.Amount(debit.Asset).LessThan(debit.Amount) {
		return &Halt{ItemID: t.ID}
	}
	if applyCredit {
		balances.Credit(credit.Asset, credit.Amount)
	}
	if applyDebit {
		balances.Debit(debit.Asset, debit.Amount)
	}
	return nil
}

func replayEvent(e HistoryEvent, balances RunningBalances, assets assetSet) *Halt {
	if !assets.contains(e.Asset) {
		return nil
	}
	direction, _ := e.Direction()
	switch direction {
	case DirectionIn:
		balances.Credit(e.Asset, e.Amount)
	case DirectionOut:
		if !balances.Debit(e.Asset, e.Amount) {
			return &Halt{ItemID: eventItemID(e), GroupID: e.EventIdentifier}
		}
	}
	return nil
}

func eventItemID(e HistoryEvent) string {
	return strconv.FormatInt(e.ID, 10)
}
