package tracking

import (
	"time"

	"github.com/partnerbi/bibot/internal/domain/shared"
)

// ReportType is the output format of a generated report
type ReportType string

const (
	ReportTypeWord  ReportType = "word"
	ReportTypePDF   ReportType = "pdf"
	ReportTypeExcel ReportType = "excel"
)

// Report records one generated partner report file and its download history.
type Report struct {
	ID               uint       `gorm:"primaryKey;autoIncrement"`
	ReportUUID       string     `gorm:"type:varchar(36);not null;uniqueIndex"`
	PartnerINN       string     `gorm:"type:varchar(20);not null;index:idx_report_user_partner,priority:2"`
	TelegramUserID   int64      `gorm:"not null;index:idx_report_user_partner,priority:1"`
	Type             ReportType `gorm:"type:varchar(10);not null;default:'word';column:report_type"`
	Path             string     `gorm:"type:varchar(500);column:report_path"`
	FileSizeBytes    int64
	AIAnalysis       string `gorm:"type:text;column:ai_analysis"`
	GenerationTimeMS int
	Downloaded       bool `gorm:"not null;default:false"`
	DownloadCount    int  `gorm:"not null;default:0"`
	LastDownloadedAt *time.Time
	CreatedAt        time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Report) TableName() string {
	return "generated_reports"
}

// NewReport creates a report record for a freshly generated file
func NewReport(reportUUID, partnerINN string, telegramUserID int64, reportType ReportType) (*Report, error) {
	if reportUUID == "" {
		return nil, shared.NewDomainError("INVALID_REPORT_UUID", "Report UUID cannot be empty")
	}
	if partnerINN == "" {
		return nil, shared.ErrInvalidINN
	}
	switch reportType {
	case ReportTypeWord, ReportTypePDF, ReportTypeExcel:
	default:
		return nil, shared.NewDomainError("INVALID_REPORT_TYPE", "Unknown report type: "+string(reportType))
	}
	return &Report{
		ReportUUID:     reportUUID,
		PartnerINN:     partnerINN,
		TelegramUserID: telegramUserID,
		Type:           reportType,
	}, nil
}
