package tracking

import "time"

// Interaction is one logged bot action: who asked, what they asked for,
// how long it took and whether it succeeded. Rows are append-only.
type Interaction struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	TelegramUserID   int64  `gorm:"not null;index"`
	TelegramUsername string `gorm:"type:varchar(100)"`
	FirstName        string `gorm:"type:varchar(100);column:telegram_first_name"`
	LastName         string `gorm:"type:varchar(100);column:telegram_last_name"`
	ActionType       string `gorm:"type:varchar(50);not null;index:idx_interaction_action"`
	PartnerINN       string `gorm:"type:varchar(20)"`
	SearchQuery      string `gorm:"type:text"`
	ResponseTimeMS   int
	Success          bool      `gorm:"not null;default:true"`
	ErrorMessage     string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Interaction) TableName() string {
	return "bot_interactions"
}
