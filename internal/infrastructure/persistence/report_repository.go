package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/partnerbi/bibot/internal/domain/shared"
	"github.com/partnerbi/bibot/internal/domain/tracking"
	"gorm.io/gorm"
)

// GormReportRepository implements tracking.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Create stores a new report record
func (r *GormReportRepository) Create(ctx context.Context, report *tracking.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// FindByUUID finds a report by its UUID
func (r *GormReportRepository) FindByUUID(ctx context.Context, reportUUID string) (*tracking.Report, error) {
	var report tracking.Report
	if err := r.db.WithContext(ctx).Where("report_uuid = ?", reportUUID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// MarkDownloaded flags the report as downloaded and bumps its counter
func (r *GormReportRepository) MarkDownloaded(ctx context.Context, reportUUID string) error {
	result := r.db.WithContext(ctx).
		Model(&tracking.Report{}).
		Where("report_uuid = ?", reportUUID).
		Updates(map[string]any{
			"downloaded":         true,
			"download_count":     gorm.Expr("download_count + 1"),
			"last_downloaded_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Counts returns total and downloaded report counts
func (r *GormReportRepository) Counts(ctx context.Context) (total, downloaded int64, err error) {
	if err = r.db.WithContext(ctx).Model(&tracking.Report{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).
		Model(&tracking.Report{}).
		Where("downloaded = ?", true).
		Count(&downloaded).Error; err != nil {
		return 0, 0, err
	}
	return total, downloaded, nil
}

// Ensure GormReportRepository implements tracking.ReportRepository
var _ tracking.ReportRepository = (*GormReportRepository)(nil)
