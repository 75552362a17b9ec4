package directory

import (
	"time"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// PartnerProfile is the full counterparty dossier the bot renders for a
// single partner. It is the unit of caching: one profile per INN.
type PartnerProfile struct {
	INN        string              `json:"inn"`
	LegalName  string              `json:"legal_name"`
	TradeName  string              `json:"trade_name,omitempty"`
	Type       partner.PartnerType `json:"partner_type"`
	Category   string              `json:"category,omitempty"`
	Competitor string              `json:"competitor,omitempty"`
	Contacts   Contacts            `json:"contacts"`
	Website    string              `json:"website,omitempty"`
	Addresses  []string            `json:"addresses"`
	Financials Financials          `json:"financials"`
	Codes      Codes               `json:"codes"`
	Ratings    Ratings             `json:"ratings"`
	LastAudit  *time.Time          `json:"last_audit,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Contacts groups the partner's contact attributes
type Contacts struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	CEO   string `json:"ceo,omitempty"`
	CFO   string `json:"cfo,omitempty"`
}

// Financials groups the partner's financial attributes
type Financials struct {
	Revenue2023   decimal.Decimal `json:"revenue_2023"`
	Revenue2022   decimal.Decimal `json:"revenue_2022"`
	Profit2023    decimal.Decimal `json:"profit_2023"`
	FoundingYear  int             `json:"founding_year,omitempty"`
	EmployeeCount int             `json:"employee_count,omitempty"`
	Turnovers     []TurnoverEntry `json:"turnovers"`
}

// TurnoverEntry is one quarterly revenue row in a profile
type TurnoverEntry struct {
	Year               int             `json:"year"`
	Quarter            int             `json:"quarter"`
	Revenue            decimal.Decimal `json:"revenue"`
	Profit             decimal.Decimal `json:"profit"`
	TransactionCount   int             `json:"transaction_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
}

// Codes groups the partner's industry classification codes
type Codes struct {
	Industry string `json:"industry,omitempty"`
	OKVED    string `json:"okved,omitempty"`
}

// Ratings groups the partner's assessment attributes
type Ratings struct {
	Rating       decimal.Decimal   `json:"rating"`
	RiskLevel    partner.RiskLevel `json:"risk_level,omitempty"`
	PaymentTerms string            `json:"payment_terms,omitempty"`
}

// SearchResult is one row of a partner search response
type SearchResult struct {
	INN       string              `json:"inn"`
	LegalName string              `json:"legal_name"`
	TradeName string              `json:"trade_name,omitempty"`
	Category  string              `json:"category,omitempty"`
	Type      partner.PartnerType `json:"partner_type"`
	Rating    decimal.Decimal     `json:"rating"`
}

// UsageStatistics is a snapshot of dataset and bot usage counters
type UsageStatistics struct {
	TotalPartners      int64                         `json:"total_partners"`
	PartnerTypes       map[partner.PartnerType]int64 `json:"partner_types"`
	AverageRating      float64                       `json:"average_rating"`
	RecentInteractions []RecentInteraction           `json:"recent_interactions"`
	GeneratedReports   ReportCounts                  `json:"generated_reports"`
}

// RecentInteraction is one entry of the recent-activity list
type RecentInteraction struct {
	User   string    `json:"user"`
	Action string    `json:"action"`
	Time   time.Time `json:"time"`
}

// ReportCounts summarizes generated report totals
type ReportCounts struct {
	Total      int64 `json:"total"`
	Downloaded int64 `json:"downloaded"`
}

// InteractionRecord captures one bot action for the interaction log
type InteractionRecord struct {
	TelegramUserID   int64
	TelegramUsername string
	FirstName        string
	LastName         string
	ActionType       string
	PartnerINN       string
	SearchQuery      string
	ResponseTimeMS   int
	Success          bool
	ErrorMessage     string
}
