package coinledger

import "github.com/shopspring/decimal"

// RunningBalances maps assets to their running balance during a replay.
// It is created fresh per query and never shared between concurrent calls.
//
// Invariant: no entry is ever exactly zero. Debit deletes an entry the
// moment it reaches zero, so the key set is always exactly "assets with a
// nonzero balance".
type RunningBalances map[Asset]decimal.Decimal

// Amount returns the running balance for an asset, zero if absent.
func (b RunningBalances) Amount(a Asset) decimal.Decimal { return b[a] }

// Credit increases an asset's balance. A zero credit is a no-op so that it
// cannot create a spurious zero entry.
func (b RunningBalances) Credit(a Asset, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	b[a] = b[a].Add(amount)
}

// Debit decreases an asset's balance, deleting the entry when it reaches
// exactly zero. It returns false, without applying anything, if the debit
// would drive the balance negative.
func (b RunningBalances) Debit(a Asset, amount decimal.Decimal) bool {
	if amount.IsZero() {
		return true
	}
	rest := b[a].Sub(amount)
	if rest.IsNegative() {
		return false
	}
	if rest.IsZero() {
		delete(b, a)
		return true
	}
	b[a] = rest
	return true
}

// Assets returns the assets currently held with a nonzero balance.
func (b RunningBalances) Assets() []Asset {
	assets := make([]Asset, 0, len(b))
	for a := range b {
		assets = append(assets, a)
	}
	return assets
}

// Total sums the balances of the given assets.
func (b RunningBalances) Total(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(b[a])
	}
	return total
}
