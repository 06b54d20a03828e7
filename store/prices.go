package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coinledger "github.com/coinledger/coinledger"
)

// priceHit is one row of the nearest-price self-join.
type priceHit struct {
	FromAsset string
	Price     string
}

// priceQuery builds the nearest-price lookup: a self-join picking, per
// asset, the row whose timestamp is closest to the target among rows inside
// the tolerance window whose quote is the target currency.
func (s *Store) priceQuery(ctx context.Context, assets []coinledger.Asset, target coinledger.Asset, at coinledger.Timestamp) *gorm.DB {
	lo := int64(at - coinledger.PriceTolerance)
	hi := int64(at + coinledger.PriceTolerance)
	return s.db.WithContext(ctx).Raw(`
		SELECT p.from_asset, p.price
		FROM price_history AS p
		JOIN (
			SELECT from_asset, MIN(ABS(timestamp - ?)) AS distance
			FROM price_history
			WHERE from_asset IN ? AND to_asset = ? AND timestamp BETWEEN ? AND ?
			GROUP BY from_asset
		) AS best
			ON best.from_asset = p.from_asset
			AND ABS(p.timestamp - ?) = best.distance
		WHERE p.to_asset = ? AND p.timestamp BETWEEN ? AND ?`,
		int64(at), assetNames(assets), string(target), lo, hi,
		int64(at), string(target), lo, hi,
	)
}

// collectPrices decodes the self-join rows and lists the requested assets
// that produced no row as misses.
func collectPrices(hits []priceHit, assets []coinledger.Asset, at coinledger.Timestamp) (map[coinledger.Asset]decimal.Decimal, []coinledger.MissingPrice, error) {
	found := make(map[coinledger.Asset]decimal.Decimal, len(assets))
	for _, h := range hits {
		asset := coinledger.Asset(h.FromAsset)
		// Two rows equidistant from the target: keep the first.
		if _, ok := found[asset]; ok {
			continue
		}
		price, err := decimal.NewFromString(h.Price)
		if err != nil {
			return nil, nil, &coinledger.DeserializationError{Table: "price_history", Row: h.FromAsset, Err: err}
		}
		found[asset] = price
	}

	var missing []coinledger.MissingPrice
	for _, a := range assets {
		if _, ok := found[a]; !ok {
			missing = append(missing, coinledger.MissingPrice{Asset: a, Timestamp: at})
		}
	}
	return found, missing, nil
}

// PricesAt resolves the nearest cached price within the tolerance window for
// every asset in one round trip. Assets with no row inside the window come
// back as misses.
func (s *Store) PricesAt(ctx context.Context, assets []coinledger.Asset, target coinledger.Asset, at coinledger.Timestamp) (map[coinledger.Asset]decimal.Decimal, []coinledger.MissingPrice, error) {
	if len(assets) == 0 {
		return map[coinledger.Asset]decimal.Decimal{}, nil, nil
	}
	var hits []priceHit
	if err := s.priceQuery(ctx, assets, target, at).Scan(&hits).Error; err != nil {
		return nil, nil, errors.Wrap(err, "querying price history")
	}
	return collectPrices(hits, assets, at)
}

// SavePrices upserts cached price points, keyed by (asset, target,
// timestamp).
func (s *Store) SavePrices(ctx context.Context, prices []coinledger.PricePoint) error {
	if len(prices) == 0 {
		return nil
	}
	rows := make([]priceRow, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, priceRow{
			FromAsset: string(p.Asset),
			ToAsset:   string(p.Target),
			Timestamp: int64(p.Timestamp),
			Price:     p.Price.String(),
		})
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_asset"}, {Name: "to_asset"}, {Name: "timestamp"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&rows).Error
	return errors.Wrap(err, "saving prices")
}
