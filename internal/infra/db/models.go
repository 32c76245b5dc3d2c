package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type clubModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoinsportID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name        string    `gorm:"size:255;not null"`
	Slug        string    `gorm:"size:100"`
	City        string    `gorm:"size:100"`
	Enabled     bool      `gorm:"default:true"`
	CreatedAt   time.Time
}

func (clubModel) TableName() string { return "clubs" }

type alertModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClubID uuid.UUID `gorm:"type:uuid;not null"`

	TargetDate time.Time `gorm:"type:date;not null"`
	TimeFrom   string    `gorm:"size:5;not null"`
	TimeTo     string    `gorm:"size:5;not null"`
	IndoorOnly *bool

	Active               bool `gorm:"default:true;index:idx_alerts_active_date,priority:1"`
	CheckIntervalMinutes int  `gorm:"not null;default:3"`
	BaselineDone         bool `gorm:"default:false"`
	LastCheckedAt        *time.Time

	BoostActive    bool `gorm:"default:false"`
	BoostExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (alertModel) TableName() string { return "user_alerts" }

type detectedSlotModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlertID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_alert_slot,priority:1"`
	ClubID  uuid.UUID `gorm:"type:uuid;not null"`

	PlaygroundID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uniq_alert_slot,priority:2"`
	PlaygroundName  string          `gorm:"size:100;not null"`
	Date            time.Time       `gorm:"type:date;not null;uniqueIndex:uniq_alert_slot,priority:3;index:idx_detected_slots_date"`
	StartTime       string          `gorm:"size:5;not null;uniqueIndex:uniq_alert_slot,priority:4"`
	DurationMinutes int
	PriceTotal      decimal.Decimal `gorm:"type:numeric(6,2)"`
	Indoor          bool

	EmailSent   bool `gorm:"default:false"`
	EmailSentAt *time.Time
	PushSent    bool `gorm:"default:false"`
	PushSentAt  *time.Time

	DetectedAt time.Time `gorm:"autoCreateTime"`
}

func (detectedSlotModel) TableName() string { return "detected_slots" }

type pushTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Token      string    `gorm:"size:255;uniqueIndex;not null"`
	DeviceType string    `gorm:"size:20"`
	Active     bool      `gorm:"default:true"`
	CreatedAt  time.Time
}

func (pushTokenModel) TableName() string { return "push_tokens" }
