package persistence

import (
	"context"
	"errors"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/partnerbi/bibot/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements partner.Repository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByINN finds a partner by its tax identifier
func (r *GormPartnerRepository) FindByINN(ctx context.Context, inn string) (*partner.Partner, error) {
	if !partner.ValidINN(inn) {
		return nil, shared.ErrInvalidINN
	}
	var p partner.Partner
	if err := r.db.WithContext(ctx).Where("inn = ?", inn).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Search matches the query against INN, legal name and trade name.
// Results are deduplicated by the unique INN column, so a partner
// matching on both INN and name appears once.
func (r *GormPartnerRepository) Search(ctx context.Context, query string, limit int) ([]partner.Partner, error) {
	if query == "" {
		return nil, shared.NewDomainError("INVALID_QUERY", "Search query cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + query + "%"
	var partners []partner.Partner
	err := r.db.WithContext(ctx).
		Where("inn LIKE ? OR legal_name LIKE ? OR trade_name LIKE ?", pattern, pattern, pattern).
		Order("rating DESC").
		Limit(limit).
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// Upsert inserts the partner or updates the existing row with the same INN
func (r *GormPartnerRepository) Upsert(ctx context.Context, p *partner.Partner) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "inn"}},
			UpdateAll: true,
		}).
		Create(p).Error
}

// Count returns the total number of partner records
func (r *GormPartnerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Partner{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByType returns record counts grouped by partner type
func (r *GormPartnerRepository) CountByType(ctx context.Context) (map[partner.PartnerType]int64, error) {
	var rows []struct {
		Type  partner.PartnerType `gorm:"column:partner_type"`
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Select("partner_type, COUNT(*) AS count").
		Group("partner_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[partner.PartnerType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// AverageRating returns the mean rating across all partners, 0 if none exist
func (r *GormPartnerRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// Ensure GormPartnerRepository implements partner.Repository
var _ partner.Repository = (*GormPartnerRepository)(nil)
