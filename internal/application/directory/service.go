package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/partnerbi/bibot/internal/domain/tracking"
	"github.com/partnerbi/bibot/internal/infrastructure/cache"
	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Service answers partner lookups for the bot with cache-aside reads:
// Redis first, then MySQL, writing the result back with a TTL.
// Cache failures degrade to database reads and are only logged.
type Service struct {
	partners     partner.Repository
	turnovers    partner.TurnoverRepository
	interactions tracking.InteractionRepository
	reports      tracking.ReportRepository
	store        cache.Store
	ttl          config.CacheConfig
	logger       *zap.Logger
}

// NewService creates a directory Service
func NewService(
	partners partner.Repository,
	turnovers partner.TurnoverRepository,
	interactions tracking.InteractionRepository,
	reports tracking.ReportRepository,
	store cache.Store,
	ttl config.CacheConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		partners:     partners,
		turnovers:    turnovers,
		interactions: interactions,
		reports:      reports,
		store:        store,
		ttl:          ttl,
		logger:       logger,
	}
}

// Profile returns the full dossier for a partner by INN
func (s *Service) Profile(ctx context.Context, inn string) (*PartnerProfile, error) {
	key := cache.PartnerKeyPrefix + inn

	var cached PartnerProfile
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.partners.FindByINN(ctx, inn)
	if err != nil {
		return nil, err
	}
	turnovers, err := s.turnovers.FindByPartner(ctx, inn)
	if err != nil {
		return nil, err
	}

	profile := buildProfile(p, turnovers)
	s.cacheSet(ctx, key, profile, s.ttl.ProfileTTL)
	return profile, nil
}

// Search returns partners matching the query by INN or name
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("%s%s:%d", cache.SearchKeyPrefix, query, limit)

	var cached []SearchResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	partners, err := s.partners.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(partners))
	for _, p := range partners {
		results = append(results, SearchResult{
			INN:       p.INN,
			LegalName: p.LegalName,
			TradeName: p.TradeName,
			Category:  p.Category,
			Type:      p.Type,
			Rating:    p.Rating,
		})
	}

	s.cacheSet(ctx, key, results, s.ttl.SearchTTL)
	return results, nil
}

// Statistics returns dataset and bot usage counters
func (s *Service) Statistics(ctx context.Context) (*UsageStatistics, error) {
	key := cache.StatsKeyPrefix + "partners"

	var cached UsageStatistics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	total, err := s.partners.Count(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.partners.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.partners.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.interactions.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}
	reportTotal, reportDownloaded, err := s.reports.Counts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &UsageStatistics{
		TotalPartners: total,
		PartnerTypes:  byType,
		AverageRating: avgRating,
		GeneratedReports: ReportCounts{
			Total:      reportTotal,
			Downloaded: reportDownloaded,
		},
	}
	for _, i := range recent {
		stats.RecentInteractions = append(stats.RecentInteractions, RecentInteraction{
			User:   strings.TrimSpace(i.FirstName + " " + i.LastName),
			Action: i.ActionType,
			Time:   i.CreatedAt,
		})
	}

	s.cacheSet(ctx, key, stats, s.ttl.StatsTTL)
	return stats, nil
}

// LogInteraction appends a record to the interaction log. Logging failures
// must never break the user-facing flow, so errors are swallowed after
// being logged.
func (s *Service) LogInteraction(ctx context.Context, rec InteractionRecord) {
	interaction := &tracking.Interaction{
		TelegramUserID:   rec.TelegramUserID,
		TelegramUsername: rec.TelegramUsername,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		ActionType:       rec.ActionType,
		PartnerINN:       rec.PartnerINN,
		SearchQuery:      rec.SearchQuery,
		ResponseTimeMS:   rec.ResponseTimeMS,
		Success:          rec.Success,
		ErrorMessage:     rec.ErrorMessage,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		s.logger.Error("Failed to log interaction",
			zap.String("action", rec.ActionType),
			zap.Error(err),
		)
	}
}

// SaveReport stores a generated report record and returns its new UUID
func (s *Service) SaveReport(ctx context.Context, partnerINN string, telegramUserID int64, reportType tracking.ReportType, path string, fileSize int64, aiAnalysis string, generationMS int) (string, error) {
	report, err := tracking.NewReport(uuid.NewString(), partnerINN, telegramUserID, reportType)
	if err != nil {
		return "", err
	}
	report.Path = path
	report.FileSizeBytes = fileSize
	report.AIAnalysis = aiAnalysis
	report.GenerationTimeMS = generationMS

	if err := s.reports.Create(ctx, report); err != nil {
		return "", err
	}
	return report.ReportUUID, nil
}

// MarkReportDownloaded records one download of a generated report
func (s *Service) MarkReportDownloaded(ctx context.Context, reportUUID string) error {
	return s.reports.MarkDownloaded(ctx, reportUUID)
}

// cacheGet loads and unmarshals a cache entry, reporting a usable hit
func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	s.logger.Debug("Cache hit", zap.String("key", key))
	return true
}

// cacheSet marshals and stores a cache entry
func (s *Service) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, data, ttl); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// buildProfile assembles the dossier DTO from domain records
func buildProfile(p *partner.Partner, turnovers []partner.Turnover) *PartnerProfile {
	profile := &PartnerProfile{
		INN:        p.INN,
		LegalName:  p.LegalName,
		TradeName:  p.TradeName,
		Type:       p.Type,
		Category:   p.Category,
		Competitor: p.Competitor,
		Contacts: Contacts{
			Email: p.Email,
			Phone: p.Phone,
			CEO:   p.CEOName,
			CFO:   p.CFOName,
		},
		Website:   p.Website,
		Addresses: p.Addresses,
		Financials: Financials{
			Revenue2023:   p.Revenue2023,
			Revenue2022:   p.Revenue2022,
			Profit2023:    p.Profit2023,
			FoundingYear:  p.FoundingYear,
			EmployeeCount: p.EmployeeCount,
		},
		Codes: Codes{
			Industry: p.IndustryCode,
			OKVED:    p.OKVEDCode,
		},
		Ratings: Ratings{
			Rating:       p.Rating,
			RiskLevel:    p.RiskLevel,
			PaymentTerms: p.PaymentTerms,
		},
		LastAudit: p.LastAuditDate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if profile.Addresses == nil {
		profile.Addresses = []string{}
	}
	profile.Financials.Turnovers = make([]TurnoverEntry, 0, len(turnovers))
	for _, t := range turnovers {
		profile.Financials.Turnovers = append(profile.Financials.Turnovers, TurnoverEntry{
			Year:               t.Year,
			Quarter:            t.Quarter,
			Revenue:            t.Revenue,
			Profit:             t.Profit,
			TransactionCount:   t.TransactionCount,
			AverageTransaction: t.AverageTransaction,
		})
	}
	return profile
}
