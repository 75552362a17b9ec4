package persistence

import (
	"context"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/partnerbi/bibot/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTurnoverRepository implements partner.TurnoverRepository using GORM
type GormTurnoverRepository struct {
	db *gorm.DB
}

// NewGormTurnoverRepository creates a new GormTurnoverRepository
func NewGormTurnoverRepository(db *gorm.DB) *GormTurnoverRepository {
	return &GormTurnoverRepository{db: db}
}

// FindByPartner returns all turnovers for a partner, newest first
func (r *GormTurnoverRepository) FindByPartner(ctx context.Context, inn string) ([]partner.Turnover, error) {
	if !partner.ValidINN(inn) {
		return nil, shared.ErrInvalidINN
	}
	var turnovers []partner.Turnover
	err := r.db.WithContext(ctx).
		Where("partner_inn = ?", inn).
		Order("year DESC, quarter DESC").
		Find(&turnovers).Error
	if err != nil {
		return nil, err
	}
	return turnovers, nil
}

// ReplaceForPartner atomically swaps a partner's turnover history.
// Used by the seed loader so re-running it never duplicates quarters.
func (r *GormTurnoverRepository) ReplaceForPartner(ctx context.Context, inn string, turnovers []partner.Turnover) error {
	if !partner.ValidINN(inn) {
		return shared.ErrInvalidINN
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("partner_inn = ?", inn).Delete(&partner.Turnover{}).Error; err != nil {
			return err
		}
		if len(turnovers) == 0 {
			return nil
		}
		return tx.Create(&turnovers).Error
	})
}

// Ensure GormTurnoverRepository implements partner.TurnoverRepository
var _ partner.TurnoverRepository = (*GormTurnoverRepository)(nil)
