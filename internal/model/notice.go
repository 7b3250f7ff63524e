package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Processing stages at which a notice still accepts furnish submissions:
// the two reminder stages and the two demand-note stages. Once a notice
// moves past DN2 the window to name a hirer or driver has closed.
const (
	StageReminder1   = "RD1"
	StageReminder2   = "RD2"
	StageDemandNote1 = "DN1"
	StageDemandNote2 = "DN2"
)

// FurnishableStage reports whether a notice at the given processing stage
// still accepts furnish submissions.
func FurnishableStage(stage string) bool {
	switch stage {
	case StageReminder1, StageReminder2, StageDemandNote1, StageDemandNote2:
		return true
	}
	return false
}

// OffenceNotice is the valid offence notice a furnish application is lodged
// against. Notice lifecycle is owned by the wider case-management system;
// this service only reads it and holds/releases its processing clock via
// suspensions.
type OffenceNotice struct {
	NoticeNo               string          `gorm:"type:varchar(20);primaryKey" json:"notice_no"`
	VehicleNo              string          `gorm:"type:varchar(20);not null;index" json:"vehicle_no"`
	OffenceDate            time.Time       `gorm:"not null" json:"offence_date"`
	PpCode                 string          `gorm:"type:varchar(10)" json:"pp_code"`
	PpName                 string          `gorm:"type:varchar(100)" json:"pp_name"` // place of offence
	CurrentProcessingStage string          `gorm:"type:varchar(30)" json:"current_processing_stage"`
	CompositionAmount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"composition_amount"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}
