package partner

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/partnerbi/bibot/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartnerType classifies the business relationship with a partner
type PartnerType string

const (
	PartnerTypeStrategic PartnerType = "strategic"
	PartnerTypeCurrent   PartnerType = "current"
	PartnerTypePotential PartnerType = "potential"
	PartnerTypeBlocked   PartnerType = "blocked"
	PartnerTypeVIP       PartnerType = "vip"
)

// RiskLevel represents the assessed counterparty risk
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// AddressList is a JSON-encoded list of registered addresses
type AddressList []string

// Value implements driver.Valuer for JSON column storage
func (a AddressList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal address list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON column storage
func (a *AddressList) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported address list type %T", value)
	}
	if len(data) == 0 {
		*a = nil
		return nil
	}
	return json.Unmarshal(data, a)
}

// Partner represents a counterparty record in the business-intelligence
// dataset. It is the aggregate root of the partner context; all related
// records (turnovers, generated reports) reference it by INN.
type Partner struct {
	shared.BaseEntity
	INN           string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_partner_inn"`
	LegalName     string          `gorm:"type:varchar(255);not null"`
	TradeName     string          `gorm:"type:varchar(255)"`
	Type          PartnerType     `gorm:"column:partner_type;type:varchar(20);not null;default:'current';index:idx_partner_type"`
	Category      string          `gorm:"type:varchar(100);index:idx_partner_category"`
	Competitor    string          `gorm:"type:varchar(255)"`
	Email         string          `gorm:"type:varchar(255)"`
	Phone         string          `gorm:"type:varchar(50)"`
	CEOName       string          `gorm:"type:varchar(255)"`
	CFOName       string          `gorm:"type:varchar(255)"`
	Website       string          `gorm:"type:varchar(255)"`
	Addresses     AddressList     `gorm:"type:json"`
	Revenue2023   decimal.Decimal `gorm:"type:decimal(15,2)"`
	Revenue2022   decimal.Decimal `gorm:"type:decimal(15,2)"`
	Profit2023    decimal.Decimal `gorm:"type:decimal(15,2)"`
	FoundingYear  int             `gorm:"type:int"`
	EmployeeCount int             `gorm:"type:int"`
	IndustryCode  string          `gorm:"type:varchar(10)"`
	OKVEDCode     string          `gorm:"type:varchar(20)"`
	Rating        decimal.Decimal `gorm:"type:decimal(3,2)"`
	RiskLevel     RiskLevel       `gorm:"type:varchar(10)"`
	PaymentTerms  string          `gorm:"type:varchar(50)"`
	LastAuditDate *time.Time
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a partner with required fields
func NewPartner(inn, legalName string, partnerType PartnerType) (*Partner, error) {
	if !ValidINN(inn) {
		return nil, shared.ErrInvalidINN
	}
	if legalName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Legal name cannot be empty")
	}
	if err := validatePartnerType(partnerType); err != nil {
		return nil, err
	}
	return &Partner{
		INN:       inn,
		LegalName: legalName,
		Type:      partnerType,
	}, nil
}

// ValidINN reports whether inn is a syntactically valid Russian tax
// identifier: 10 digits for legal entities, 12 for sole proprietors.
func ValidINN(inn string) bool {
	if len(inn) != 10 && len(inn) != 12 {
		return false
	}
	for _, r := range inn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validatePartnerType(t PartnerType) error {
	switch t {
	case PartnerTypeStrategic, PartnerTypeCurrent, PartnerTypePotential,
		PartnerTypeBlocked, PartnerTypeVIP:
		return nil
	}
	return shared.NewDomainError("INVALID_PARTNER_TYPE", "Unknown partner type: "+string(t))
}
