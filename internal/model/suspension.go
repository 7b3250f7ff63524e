package model

import "time"

// Suspension type and reason codes
const (
	SuspensionTypeTemporary = "TS"
	SuspensionTypePermanent = "PS"

	SuspensionReasonPDP = "PDP" // pending driver particulars

	SuspensionSourceFurnish = "FURN"

	RevivalReasonApproved = "APR"

	// TsPdpWindowDays is the fixed hold placed on a notice's processing
	// clock while a furnish submission awaits disposition.
	TsPdpWindowDays = 21
)

// SuspendedNotice is a time-boxed hold on a notice's processing clock.
// A row with a nil DateOfRevival is an active suspension.
type SuspendedNotice struct {
	NoticeNo         string    `gorm:"type:varchar(20);primaryKey" json:"notice_no"`
	SrNo             int       `gorm:"primaryKey" json:"sr_no"`
	DateOfSuspension time.Time `gorm:"not null" json:"date_of_suspension"`

	SuspensionSource   string    `gorm:"type:varchar(10);not null" json:"suspension_source"`
	SuspensionType     string    `gorm:"type:varchar(5);not null" json:"suspension_type"` // TS or PS
	ReasonOfSuspension string    `gorm:"type:varchar(10);not null" json:"reason_of_suspension"`
	OfficerAuthorising string    `gorm:"type:varchar(50)" json:"officer_authorising"`
	DueDateOfRevival   time.Time `json:"due_date_of_revival"`
	SuspensionRemarks  string    `gorm:"type:text" json:"suspension_remarks"`

	DateOfRevival             *time.Time `json:"date_of_revival"`
	RevivalReason             string     `gorm:"type:varchar(10)" json:"revival_reason"`
	OfficerAuthorisingRevival string     `gorm:"type:varchar(50)" json:"officer_authorising_revival"`
	RevivalRemarks            string     `gorm:"type:text" json:"revival_remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActiveTsPdp reports whether this row is an open TS-PDP hold.
func (s *SuspendedNotice) IsActiveTsPdp() bool {
	return s.SuspensionType == SuspensionTypeTemporary &&
		s.ReasonOfSuspension == SuspensionReasonPDP &&
		s.DateOfRevival == nil
}
