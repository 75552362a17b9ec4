package tracking

import "context"

// InteractionRepository defines persistence operations for the interaction log
type InteractionRepository interface {
	// Create appends one interaction record
	Create(ctx context.Context, i *Interaction) error

	// Recent returns the n most recent interactions, newest first
	Recent(ctx context.Context, n int) ([]Interaction, error)
}

// ReportRepository defines persistence operations for generated reports
type ReportRepository interface {
	// Create stores a new report record
	Create(ctx context.Context, r *Report) error

	// FindByUUID returns the report with the given UUID, or shared.ErrNotFound
	FindByUUID(ctx context.Context, reportUUID string) (*Report, error)

	// MarkDownloaded flags the report as downloaded and bumps its counter
	MarkDownloaded(ctx context.Context, reportUUID string) error

	// Counts returns total and downloaded report counts
	Counts(ctx context.Context) (total, downloaded int64, err error)
}
