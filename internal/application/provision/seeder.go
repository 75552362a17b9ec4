package provision

import (
	"context"
	"fmt"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/partnerbi/bibot/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// SeedPartner is one dataset entry: a partner and its turnover history
type SeedPartner struct {
	Partner   partner.Partner
	Turnovers []partner.Turnover
}

// SeedSummary reports what a seed run changed
type SeedSummary struct {
	Partners         int
	Turnovers        int
	CacheKeysFlushed int64
}

// Seeder loads the partner dataset into MySQL and invalidates the partner
// cache afterwards. Runs are idempotent: partners are upserted by INN and
// each partner's turnover history is replaced wholesale.
type Seeder struct {
	partners  partner.Repository
	turnovers partner.TurnoverRepository
	store     cache.Store
	logger    *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(partners partner.Repository, turnovers partner.TurnoverRepository, store cache.Store, logger *zap.Logger) *Seeder {
	return &Seeder{
		partners:  partners,
		turnovers: turnovers,
		store:     store,
		logger:    logger,
	}
}

// Seed loads the dataset and flushes stale cache entries
func (s *Seeder) Seed(ctx context.Context, dataset []SeedPartner) (SeedSummary, error) {
	var summary SeedSummary

	for _, entry := range dataset {
		if !partner.ValidINN(entry.Partner.INN) {
			return summary, fmt.Errorf("seed dataset contains invalid INN %q", entry.Partner.INN)
		}
		if err := s.partners.Upsert(ctx, &entry.Partner); err != nil {
			return summary, fmt.Errorf("failed to seed partner %s: %w", entry.Partner.INN, err)
		}
		summary.Partners++

		if err := s.turnovers.ReplaceForPartner(ctx, entry.Partner.INN, entry.Turnovers); err != nil {
			return summary, fmt.Errorf("failed to seed turnovers for partner %s: %w", entry.Partner.INN, err)
		}
		summary.Turnovers += len(entry.Turnovers)

		s.logger.Debug("Seeded partner",
			zap.String("inn", entry.Partner.INN),
			zap.String("legal_name", entry.Partner.LegalName),
			zap.Int("turnovers", len(entry.Turnovers)),
		)
	}

	flushed, err := s.flushCache(ctx)
	if err != nil {
		// The data is in place; a flush failure only delays freshness
		// until the TTLs expire.
		s.logger.Warn("Failed to flush partner cache after seeding", zap.Error(err))
	}
	summary.CacheKeysFlushed = flushed

	s.logger.Info("Seed completed",
		zap.Int("partners", summary.Partners),
		zap.Int("turnovers", summary.Turnovers),
		zap.Int64("cache_keys_flushed", summary.CacheKeysFlushed),
	)
	return summary, nil
}

// flushCache invalidates every cached view of the partner dataset
func (s *Seeder) flushCache(ctx context.Context) (int64, error) {
	var flushed int64
	for _, prefix := range []string{cache.PartnerKeyPrefix, cache.SearchKeyPrefix, cache.StatsKeyPrefix} {
		n, err := s.store.DeleteByPrefix(ctx, prefix)
		flushed += n
		if err != nil {
			return flushed, err
		}
	}
	return flushed, nil
}
