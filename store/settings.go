package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coinledger "github.com/coinledger/coinledger"
)

const mainCurrencySetting = "main_currency"

// DefaultMainCurrency is used until the user picks one.
const DefaultMainCurrency = coinledger.Asset("USD")

// MainCurrency returns the currency every valuation is expressed in.
func (s *Store) MainCurrency(ctx context.Context) (coinledger.Asset, error) {
	var row settingRow
	err := s.db.WithContext(ctx).
		Where("name = ?", mainCurrencySetting).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultMainCurrency, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "reading main currency")
	}
	return coinledger.Asset(row.Value), nil
}

// SetMainCurrency persists the valuation currency.
func (s *Store) SetMainCurrency(ctx context.Context, asset coinledger.Asset) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingRow{Name: mainCurrencySetting, Value: string(asset)}).Error
	return errors.Wrap(err, "saving main currency")
}

// IgnoreAsset adds an asset to the ignore list. Ignored assets are filtered
// out of every replay at the source.
func (s *Store) IgnoreAsset(ctx context.Context, asset coinledger.Asset) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identifier"}},
		DoNothing: true,
	}).Create(&ignoredAssetRow{Identifier: string(asset)}).Error
	return errors.Wrap(err, "ignoring asset")
}

// UnignoreAsset removes an asset from the ignore list.
func (s *Store) UnignoreAsset(ctx context.Context, asset coinledger.Asset) error {
	err := s.db.WithContext(ctx).
		Where("identifier = ?", string(asset)).
		Delete(&ignoredAssetRow{}).Error
	return errors.Wrap(err, "unignoring asset")
}

// IgnoredAssets lists the ignore list, ordered for stable display.
func (s *Store) IgnoredAssets(ctx context.Context) ([]coinledger.Asset, error) {
	var rows []ignoredAssetRow
	if err := s.db.WithContext(ctx).
		Order("identifier asc").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "listing ignored assets")
	}
	assets := make([]coinledger.Asset, 0, len(rows))
	for _, r := range rows {
		assets = append(assets, coinledger.Asset(r.Identifier))
	}
	return assets, nil
}
