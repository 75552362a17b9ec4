package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/partnerbi/bibot/internal/domain/shared"
	"github.com/partnerbi/bibot/internal/domain/tracking"
	"github.com/partnerbi/bibot/internal/infrastructure/cache"
	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePartnerRepo serves a fixed partner set and counts lookups so tests
// can tell cache hits from database reads.
type fakePartnerRepo struct {
	partners map[string]*partner.Partner
	findErr  error
	calls    int
}

func (f *fakePartnerRepo) FindByINN(_ context.Context, inn string) (*partner.Partner, error) {
	f.calls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.partners[inn]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakePartnerRepo) Search(_ context.Context, query string, limit int) ([]partner.Partner, error) {
	f.calls++
	var results []partner.Partner
	for _, p := range f.partners {
		results = append(results, *p)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (f *fakePartnerRepo) Upsert(_ context.Context, _ *partner.Partner) error { return nil }

func (f *fakePartnerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.partners)), nil
}

func (f *fakePartnerRepo) CountByType(_ context.Context) (map[partner.PartnerType]int64, error) {
	counts := make(map[partner.PartnerType]int64)
	for _, p := range f.partners {
		counts[p.Type]++
	}
	return counts, nil
}

func (f *fakePartnerRepo) AverageRating(_ context.Context) (float64, error) { return 4.5, nil }

type fakeTurnoverRepo struct {
	turnovers map[string][]partner.Turnover
}

func (f *fakeTurnoverRepo) FindByPartner(_ context.Context, inn string) ([]partner.Turnover, error) {
	return f.turnovers[inn], nil
}

func (f *fakeTurnoverRepo) ReplaceForPartner(_ context.Context, _ string, _ []partner.Turnover) error {
	return nil
}

type fakeInteractionRepo struct {
	created   []tracking.Interaction
	createErr error
}

func (f *fakeInteractionRepo) Create(_ context.Context, i *tracking.Interaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *i)
	return nil
}

func (f *fakeInteractionRepo) Recent(_ context.Context, n int) ([]tracking.Interaction, error) {
	if n < len(f.created) {
		return f.created[:n], nil
	}
	return f.created, nil
}

type fakeReportRepo struct {
	created []tracking.Report
	marked  []string
}

func (f *fakeReportRepo) Create(_ context.Context, r *tracking.Report) error {
	f.created = append(f.created, *r)
	return nil
}

func (f *fakeReportRepo) FindByUUID(_ context.Context, reportUUID string) (*tracking.Report, error) {
	for i := range f.created {
		if f.created[i].ReportUUID == reportUUID {
			return &f.created[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReportRepo) MarkDownloaded(_ context.Context, reportUUID string) error {
	f.marked = append(f.marked, reportUUID)
	return nil
}

func (f *fakeReportRepo) Counts(_ context.Context) (int64, int64, error) {
	return int64(len(f.created)), 0, nil
}

// failingStore simulates a Redis outage
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (failingStore) DeleteByPrefix(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}
func (failingStore) Ping(context.Context) error { return errors.New("connection refused") }
func (failingStore) Close() error               { return nil }

func testTTLConfig() config.CacheConfig {
	return config.CacheConfig{
		Backend:    "memory",
		ProfileTTL: time.Hour,
		SearchTTL:  time.Minute,
		StatsTTL:   5 * time.Minute,
	}
}

func sberbank() *partner.Partner {
	return &partner.Partner{
		INN:       "7707083893",
		LegalName: "ПАО Сбербанк",
		TradeName: "Сбер",
		Type:      partner.PartnerTypeStrategic,
		Rating:    decimal.RequireFromString("4.80"),
		RiskLevel: partner.RiskLevelLow,
	}
}

func newTestService(partners *fakePartnerRepo, store cache.Store) (*Service, *fakeInteractionRepo, *fakeReportRepo) {
	interactions := &fakeInteractionRepo{}
	reports := &fakeReportRepo{}
	turnovers := &fakeTurnoverRepo{turnovers: map[string][]partner.Turnover{
		"7707083893": {
			{PartnerINN: "7707083893", Year: 2024, Quarter: 1, Revenue: decimal.RequireFromString("120000000.00")},
		},
	}}
	svc := NewService(partners, turnovers, interactions, reports, store, testTTLConfig(), zap.NewNop())
	return svc, interactions, reports
}

func TestService_Profile(t *testing.T) {
	t.Run("caches the profile after the first read", func(t *testing.T) {
		repo := &fakePartnerRepo{partners: map[string]*partner.Partner{"7707083893": sberbank()}}
		svc, _, _ := newTestService(repo, cache.NewInMemoryStore())

		first, err := svc.Profile(context.Background(), "7707083893")
		require.NoError(t, err)
		assert.Equal(t, "ПАО Сбербанк", first.LegalName)
		require.Len(t, first.Financials.Turnovers, 1)
		assert.Equal(t, 2024, first.Financials.Turnovers[0].Year)

		second, err := svc.Profile(context.Background(), "7707083893")
		require.NoError(t, err)
		assert.Equal(t, first.INN, second.INN)
		assert.Equal(t, 1, repo.calls, "second read must be served from cache")
	})

	t.Run("propagates ErrNotFound", func(t *testing.T) {
		repo := &fakePartnerRepo{partners: map[string]*partner.Partner{}}
		svc, _, _ := newTestService(repo, cache.NewInMemoryStore())

		_, err := svc.Profile(context.Background(), "1234567890")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("degrades to database reads when the cache is down", func(t *testing.T) {
		repo := &fakePartnerRepo{partners: map[string]*partner.Partner{"7707083893": sberbank()}}
		svc, _, _ := newTestService(repo, failingStore{})

		profile, err := svc.Profile(context.Background(), "7707083893")
		require.NoError(t, err)
		assert.Equal(t, "7707083893", profile.INN)

		_, err = svc.Profile(context.Background(), "7707083893")
		require.NoError(t, err)
		assert.Equal(t, 2, repo.calls, "every read hits the database while the cache is down")
	})
}

func TestService_Search(t *testing.T) {
	repo := &fakePartnerRepo{partners: map[string]*partner.Partner{"7707083893": sberbank()}}
	svc, _, _ := newTestService(repo, cache.NewInMemoryStore())

	results, err := svc.Search(context.Background(), "сбер", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "7707083893", results[0].INN)

	_, err = svc.Search(context.Background(), "сбер", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "repeat queries must be served from cache")

	// A different limit is a different cache entry.
	_, err = svc.Search(context.Background(), "сбер", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestService_Statistics(t *testing.T) {
	repo := &fakePartnerRepo{partners: map[string]*partner.Partner{"7707083893": sberbank()}}
	svc, interactions, _ := newTestService(repo, cache.NewInMemoryStore())

	interactions.created = []tracking.Interaction{
		{TelegramUserID: 42, FirstName: "Ivan", LastName: "Petrov", ActionType: "search", CreatedAt: time.Now()},
	}

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPartners)
	assert.Equal(t, int64(1), stats.PartnerTypes[partner.PartnerTypeStrategic])
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
	require.Len(t, stats.RecentInteractions, 1)
	assert.Equal(t, "Ivan Petrov", stats.RecentInteractions[0].User)
}

func TestService_LogInteraction(t *testing.T) {
	t.Run("records the interaction", func(t *testing.T) {
		repo := &fakePartnerRepo{}
		svc, interactions, _ := newTestService(repo, cache.NewInMemoryStore())

		svc.LogInteraction(context.Background(), InteractionRecord{
			TelegramUserID: 42,
			ActionType:     "profile",
			PartnerINN:     "7707083893",
			ResponseTimeMS: 120,
			Success:        true,
		})

		require.Len(t, interactions.created, 1)
		assert.Equal(t, "profile", interactions.created[0].ActionType)
	})

	t.Run("swallows storage errors", func(t *testing.T) {
		repo := &fakePartnerRepo{}
		svc, interactions, _ := newTestService(repo, cache.NewInMemoryStore())
		interactions.createErr = errors.New("deadlock")

		assert.NotPanics(t, func() {
			svc.LogInteraction(context.Background(), InteractionRecord{ActionType: "search"})
		})
		assert.Empty(t, interactions.created)
	})
}

func TestService_SaveReport(t *testing.T) {
	repo := &fakePartnerRepo{}
	svc, _, reports := newTestService(repo, cache.NewInMemoryStore())

	reportUUID, err := svc.SaveReport(context.Background(), "7707083893", 42, tracking.ReportTypePDF, "/reports/sber.pdf", 2048, "solid financials", 850)
	require.NoError(t, err)

	_, err = uuid.Parse(reportUUID)
	assert.NoError(t, err, "SaveReport must return a valid UUID")

	require.Len(t, reports.created, 1)
	saved := reports.created[0]
	assert.Equal(t, reportUUID, saved.ReportUUID)
	assert.Equal(t, tracking.ReportTypePDF, saved.Type)
	assert.Equal(t, "/reports/sber.pdf", saved.Path)
	assert.Equal(t, int64(2048), saved.FileSizeBytes)
}

func TestService_SaveReport_InvalidType(t *testing.T) {
	repo := &fakePartnerRepo{}
	svc, _, reports := newTestService(repo, cache.NewInMemoryStore())

	_, err := svc.SaveReport(context.Background(), "7707083893", 42, "html", "", 0, "", 0)
	require.Error(t, err)
	assert.Empty(t, reports.created)
}

func TestService_MarkReportDownloaded(t *testing.T) {
	repo := &fakePartnerRepo{}
	svc, _, reports := newTestService(repo, cache.NewInMemoryStore())

	require.NoError(t, svc.MarkReportDownloaded(context.Background(), "some-uuid"))
	assert.Equal(t, []string{"some-uuid"}, reports.marked)
}
