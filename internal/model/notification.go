package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification delivery status codes
const (
	NotificationSent   = "S"
	NotificationFailed = "F"
)

// EmailNotificationRecord stores each email sent (or attempted) for a notice.
type EmailNotificationRecord struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NoticeNo        string     `gorm:"type:varchar(20);not null;index" json:"notice_no"`
	ProcessingStage string     `gorm:"type:varchar(30)" json:"processing_stage"`
	EmailAddr       string     `gorm:"type:varchar(100);not null" json:"email_addr"`
	Subject         string     `gorm:"type:varchar(255)" json:"subject"`
	Content         []byte     `gorm:"type:bytea" json:"-"`
	Status          string     `gorm:"type:char(1);not null" json:"status"` // S or F
	DateSent        *time.Time `json:"date_sent"`
	MsgError        string     `gorm:"type:text" json:"msg_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SmsNotificationRecord stores each SMS sent (or attempted) for a notice.
type SmsNotificationRecord struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NoticeNo        string     `gorm:"type:varchar(20);not null;index" json:"notice_no"`
	ProcessingStage string     `gorm:"type:varchar(30)" json:"processing_stage"`
	MobileCode      string     `gorm:"type:varchar(5)" json:"mobile_code"`
	MobileNo        string     `gorm:"type:varchar(20);not null" json:"mobile_no"`
	Content         []byte     `gorm:"type:bytea" json:"-"`
	Status          string     `gorm:"type:char(1);not null" json:"status"` // S or F
	DateSent        *time.Time `json:"date_sent"`
	MsgError        string     `gorm:"type:text" json:"msg_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
