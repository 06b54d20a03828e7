package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coinledger "github.com/coinledger/coinledger"
)

// eventQuery translates an EventFilter into the WHERE clauses of the event
// read. The second-granularity bounds are converted to the events'
// millisecond clock here.
func (s *Store) eventQuery(ctx context.Context, f coinledger.EventFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&historyEventRow{})
	if f.From != nil {
		q = q.Where("timestamp >= ?", int64(*f.From)*1000)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", int64(*f.To)*1000)
	}
	if len(f.Assets) > 0 {
		q = q.Where("asset IN ?", assetNames(f.Assets))
	}
	if f.ExcludeIgnored {
		ignored := s.db.Model(&ignoredAssetRow{}).Select("identifier")
		q = q.Where("asset NOT IN (?)", ignored)
	}
	if f.ExcludeCollateral {
		q = q.Where("subtype NOT IN ?", []string{
			string(coinledger.SubtypeDepositAsset),
			string(coinledger.SubtypeRemoveAsset),
		})
	}
	return q.Order("timestamp asc, event_identifier asc, sequence_index asc")
}

// Events opens a cursor over history events matching the filter. Ordering
// is timestamp, then grouping identifier, then sequence index, so the legs
// of one action always replay in their recorded order.
func (s *Store) Events(ctx context.Context, f coinledger.EventFilter) (coinledger.EventCursor, error) {
	rows, err := s.eventQuery(ctx, f).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "querying history events")
	}
	return &eventCursor{db: s.db, rows: rows}, nil
}

type eventCursor struct {
	db   *gorm.DB
	rows *sql.Rows
	err  error
}

func (c *eventCursor) Fetch(n int) ([]coinledger.HistoryEvent, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]coinledger.HistoryEvent, 0, n)
	for len(out) < n && c.rows.Next() {
		var row historyEventRow
		if err := c.db.ScanRows(c.rows, &row); err != nil {
			c.err = errors.Wrap(err, "scanning history event row")
			return nil, c.err
		}
		e, err := row.decode()
		if err != nil {
			c.err = err
			return nil, c.err
		}
		out = append(out, e)
	}
	if err := c.rows.Err(); err != nil {
		c.err = errors.Wrap(err, "iterating history events")
		return nil, c.err
	}
	return out, nil
}

func (c *eventCursor) Close() error {
	return c.rows.Close()
}

// SaveEvents inserts history events. The numeric row id is assigned by the
// database; duplicate (event_identifier, sequence_index) pairs are dropped
// so re-imports do not multiply legs.
func (s *Store) SaveEvents(ctx context.Context, events []coinledger.HistoryEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]historyEventRow, 0, len(events))
	for _, e := range events {
		row := encodeEvent(e)
		row.ID = 0
		rows = append(rows, row)
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_identifier"}, {Name: "sequence_index"}},
		DoNothing: true,
	}).Create(&rows).Error
	return errors.Wrap(err, "saving history events")
}
