package partner

import (
	"github.com/partnerbi/bibot/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Turnover is one quarterly (or yearly, when Quarter is 0) revenue record
// for a partner, keyed by the partner's INN.
type Turnover struct {
	shared.BaseEntity
	PartnerINN         string          `gorm:"type:varchar(20);not null;index:idx_turnover_partner_year,priority:1"`
	Year               int             `gorm:"not null;index:idx_turnover_partner_year,priority:2"`
	Quarter            int             `gorm:"type:int"`
	Revenue            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Profit             decimal.Decimal `gorm:"type:decimal(15,2)"`
	TransactionCount   int             `gorm:"type:int"`
	AverageTransaction decimal.Decimal `gorm:"type:decimal(15,2)"`
}

// TableName returns the table name for GORM
func (Turnover) TableName() string {
	return "turnovers"
}

// NewTurnover creates a turnover record with required fields
func NewTurnover(partnerINN string, year, quarter int, revenue decimal.Decimal) (*Turnover, error) {
	if !ValidINN(partnerINN) {
		return nil, shared.ErrInvalidINN
	}
	if year < 1900 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year must be a four-digit calendar year")
	}
	if quarter < 0 || quarter > 4 {
		return nil, shared.NewDomainError("INVALID_QUARTER", "Quarter must be between 1 and 4, or 0 for yearly totals")
	}
	return &Turnover{
		PartnerINN: partnerINN,
		Year:       year,
		Quarter:    quarter,
		Revenue:    revenue,
	}, nil
}
