package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coinledger "github.com/coinledger/coinledger"
)

// krakenLocation is excluded from trade reads: kraken activity is synced as
// history events as well, and replaying both would double count it.
const krakenLocation = "kraken"

// tradeQuery translates a TradeFilter into the WHERE clauses of the trade
// read. Split from Trades so the filter-to-SQL mapping is testable without
// a live database.
func (s *Store) tradeQuery(ctx context.Context, f coinledger.TradeFilter) *gorm.DB {
	q := s.db.WithContext(ctx).
		Model(&tradeRow{}).
		Where("location <> ?", krakenLocation)
	if f.From != nil {
		q = q.Where("timestamp >= ?", int64(*f.From))
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", int64(*f.To))
	}
	if len(f.Assets) > 0 {
		names := assetNames(f.Assets)
		q = q.Where("base_asset IN ? OR quote_asset IN ?", names, names)
	}
	if f.ExcludeIgnored {
		ignored := s.db.Model(&ignoredAssetRow{}).Select("identifier")
		q = q.Where("base_asset NOT IN (?)", ignored).
			Where("quote_asset NOT IN (?)", ignored)
	}
	return q.Order("timestamp asc, id asc")
}

// Trades opens a cursor over trades matching the filter, ordered by
// timestamp then id so the stream is deterministic across runs.
func (s *Store) Trades(ctx context.Context, f coinledger.TradeFilter) (coinledger.TradeCursor, error) {
	rows, err := s.tradeQuery(ctx, f).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "querying trades")
	}
	return &tradeCursor{db: s.db, rows: rows}, nil
}

// tradeCursor streams decoded trades off an open result set. Any decode or
// scan failure poisons the cursor: every later Fetch repeats the error.
type tradeCursor struct {
	db   *gorm.DB
	rows *sql.Rows
	err  error
}

func (c *tradeCursor) Fetch(n int) ([]coinledger.Trade, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]coinledger.Trade, 0, n)
	for len(out) < n && c.rows.Next() {
		var row tradeRow
		if err := c.db.ScanRows(c.rows, &row); err != nil {
			c.err = errors.Wrap(err, "scanning trade row")
			return nil, c.err
		}
		t, err := row.decode()
		if err != nil {
			c.err = err
			return nil, c.err
		}
		out = append(out, t)
	}
	if err := c.rows.Err(); err != nil {
		c.err = errors.Wrap(err, "iterating trades")
		return nil, c.err
	}
	return out, nil
}

func (c *tradeCursor) Close() error {
	return c.rows.Close()
}

// SaveTrades upserts trades by id, so re-importing the same export is
// idempotent.
func (s *Store) SaveTrades(ctx context.Context, trades []coinledger.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, encodeTrade(t))
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"timestamp", "location", "base_asset", "quote_asset", "type", "amount", "rate",
		}),
	}).Create(&rows).Error
	return errors.Wrap(err, "saving trades")
}

func assetNames(assets []coinledger.Asset) []string {
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, string(a))
	}
	return names
}
