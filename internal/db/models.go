package db

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the history row of one played session. Live game state never
// lives here.
type Session struct {
	ID          uint       `gorm:"primaryKey"`
	PublicID    string     `gorm:"size:64;uniqueIndex;not null"`
	JoinCode    string     `gorm:"size:64;index;not null"`
	Mode        string     `gorm:"size:16;not null"`
	PlayerCount int        `gorm:"not null"`
	PackID      string     `gorm:"size:64;not null"`
	EndedAt     *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	Events      []Event
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID uint           `gorm:"index;not null"`
	PlayerID  *int           `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

type PromptPack struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"size:64;uniqueIndex;not null"`
	Title     string    `gorm:"size:128;not null"`
	ProductID string    `gorm:"size:128;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PromptLibrary struct {
	ID        uint      `gorm:"primaryKey"`
	PackKey   string    `gorm:"size:64;not null;uniqueIndex:idx_prompt_library_pack_text"`
	Text      string    `gorm:"size:280;not null;uniqueIndex:idx_prompt_library_pack_text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Entitlement struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID string    `gorm:"size:128;not null;uniqueIndex:idx_entitlements_customer_product"`
	ProductID  string    `gorm:"size:128;not null;uniqueIndex:idx_entitlements_customer_product"`
	CreatedAt  time.Time `gorm:"not null"`
}
