package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Ids are bigserial.
type UserModel struct {
	ID                int64          `gorm:"primaryKey;autoIncrement"`
	Username          string         `gorm:"uniqueIndex;not null"`
	Email             string         `gorm:"uniqueIndex;not null"`
	PasswordHash      string         `gorm:"not null"`
	FullName          string         `gorm:"not null;default:''"`
	BusinessName      string         `gorm:"not null;default:''"`
	BusinessType      string         `gorm:"not null;default:''"`
	Role              string         `gorm:"not null;index"`
	CategoriesAllowed datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"not null"`
}

type ServiceModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"not null;index"`
	Type        string    `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	BasePrice   float64   `gorm:"not null"`
	Available   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type BookingModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	UserID        int64     `gorm:"not null;index"`
	ServiceID     int64     `gorm:"not null;index"`
	Category      string    `gorm:"not null"`
	CustomerName  string    `gorm:"not null"`
	CustomerEmail string    `gorm:"not null"`
	StartDate     time.Time `gorm:"not null"`
	EndDate       time.Time `gorm:"not null"`
	TotalPrice    float64   `gorm:"not null"`
	Commission    float64   `gorm:"not null"`
	Status        string    `gorm:"not null;index"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

type CalendarSourceModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UserID       int64  `gorm:"not null;index"`
	ServiceID    *int64 `gorm:"index"`
	Name         string `gorm:"not null"`
	URL          string `gorm:"not null"`
	Type         string `gorm:"not null"`
	LastSyncedAt *time.Time
	CreatedAt    time.Time `gorm:"not null"`
}

type CalendarEventModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"not null;index"`
	ServiceID  *int64 `gorm:"index"`
	SourceID   *int64 `gorm:"index"`
	ExternalID string
	Title      string    `gorm:"not null"`
	StartDate  time.Time `gorm:"not null;index"`
	EndDate    time.Time `gorm:"not null"`
	Status     string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

type NotificationModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	Title     string    `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	Type      string    `gorm:"not null"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

type MarketingContentModel struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	UserID      int64          `gorm:"not null;index"`
	ContentType string         `gorm:"not null"`
	Content     string         `gorm:"type:text;not null"`
	Prompt      datatypes.JSON `gorm:"type:jsonb"`
	AssetKey    string
	CreatedAt   time.Time `gorm:"not null"`
}
