package coinledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceTolerance is the maximum distance from the target timestamp within
// which a cached price is considered close enough to use.
const PriceTolerance = Timestamp(SecondsPerDay)

// MissingPrice records one asset for which no cached price existed within
// the tolerance window of a timestamp. Misses are data, not errors: the
// caller annotates its report instead of failing.
type MissingPrice struct {
	Asset     Asset
	Timestamp Timestamp
}

// PriceSource resolves historical prices in a target (main) currency.
//
// PricesAt performs a single batched lookup for all given assets at one
// timestamp, returning the nearest cached price within PriceTolerance per
// asset, and listing the assets it could not price. Only infrastructure
// failures are returned as errors.
type PriceSource interface {
	PricesAt(ctx context.Context, assets []Asset, target Asset, at Timestamp) (map[Asset]decimal.Decimal, []MissingPrice, error)
}

// resolvePrices wraps a PriceSource call with the self-price rule: the main
// currency is worth exactly 1 of itself, decided here so that no storage
// query is ever issued for it.
func resolvePrices(ctx context.Context, source PriceSource, assets []Asset, target Asset, at Timestamp) (map[Asset]decimal.Decimal, []MissingPrice, error) {
	others := make([]Asset, 0, len(assets))
	selfPriced := false
	for _, a := range assets {
		if a == target {
			selfPriced = true
			continue
		}
		others = append(others, a)
	}

	found := make(map[Asset]decimal.Decimal, len(assets))
	var missing []MissingPrice
	if len(others) > 0 {
		prices, misses, err := source.PricesAt(ctx, others, target, at)
		if err != nil {
			return nil, nil, err
		}
		for a, p := range prices {
			found[a] = p
		}
		missing = misses
	}
	if selfPriced {
		found[target] = decimal.NewFromInt(1)
	}
	return found, missing, nil
}

// PricePoint is one cached historical price: one unit of Asset was worth
// Price units of Target at Timestamp.
type PricePoint struct {
	Asset     Asset
	Target    Asset
	Timestamp Timestamp
	Price     decimal.Decimal
}

// HistoricalBalance is the amount of one asset at one point in time together
// with its price in the main currency. A zero price with a nonzero amount
// means the price was missing from the cache.
type HistoricalBalance struct {
	Amount decimal.Decimal
	Price  decimal.Decimal
}
