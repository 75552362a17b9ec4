package persistence

import (
	"context"

	"github.com/partnerbi/bibot/internal/domain/tracking"
	"gorm.io/gorm"
)

// GormInteractionRepository implements tracking.InteractionRepository using GORM
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewGormInteractionRepository creates a new GormInteractionRepository
func NewGormInteractionRepository(db *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: db}
}

// Create appends one interaction record
func (r *GormInteractionRepository) Create(ctx context.Context, i *tracking.Interaction) error {
	return r.db.WithContext(ctx).Create(i).Error
}

// Recent returns the n most recent interactions, newest first
func (r *GormInteractionRepository) Recent(ctx context.Context, n int) ([]tracking.Interaction, error) {
	if n <= 0 {
		n = 10
	}
	var interactions []tracking.Interaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// Ensure GormInteractionRepository implements tracking.InteractionRepository
var _ tracking.InteractionRepository = (*GormInteractionRepository)(nil)
