package partner

import "context"

// Repository defines persistence operations for partner records
type Repository interface {
	// FindByINN returns the partner with the given INN, or shared.ErrNotFound
	FindByINN(ctx context.Context, inn string) (*Partner, error)

	// Search matches the query against INN, legal name and trade name
	Search(ctx context.Context, query string, limit int) ([]Partner, error)

	// Upsert inserts the partner or updates the existing row with the same INN
	Upsert(ctx context.Context, p *Partner) error

	// Count returns the total number of partner records
	Count(ctx context.Context) (int64, error)

	// CountByType returns record counts grouped by partner type
	CountByType(ctx context.Context) (map[PartnerType]int64, error)

	// AverageRating returns the mean rating across all partners
	AverageRating(ctx context.Context) (float64, error)
}

// TurnoverRepository defines persistence operations for turnover records
type TurnoverRepository interface {
	// FindByPartner returns all turnovers for a partner, newest first
	FindByPartner(ctx context.Context, inn string) ([]Turnover, error)

	// ReplaceForPartner atomically swaps a partner's turnover history
	ReplaceForPartner(ctx context.Context, inn string, turnovers []Turnover) error
}
