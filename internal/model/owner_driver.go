package model

import "time"

// Offender indicator values
const (
	OffenderCurrent    = "Y"
	OffenderSuperseded = "N"
)

// Address type codes for OwnerDriverAddr
const (
	AddrTypeLtaReg        = "lta_reg"
	AddrTypeLtaMail       = "lta_mail"
	AddrTypeMhaReg        = "mha_reg"
	AddrTypeFurnishedMail = "furnished_mail"
)

// OwnerDriver records who is currently treated as the addressable offender
// for a given role (hirer or driver) on a notice. One row per
// (notice, indicator); the row with OffenderIndicator=Y is the active
// correspondence target.
type OwnerDriver struct {
	NoticeNo             string    `gorm:"type:varchar(20);primaryKey" json:"notice_no"`
	OwnerDriverIndicator string    `gorm:"type:char(1);primaryKey" json:"owner_driver_indicator"` // H or D
	IDNo                 string    `gorm:"type:varchar(20);not null;index" json:"id_no"`
	IDType               string    `gorm:"type:varchar(10)" json:"id_type"`
	Name                 string    `gorm:"type:varchar(100)" json:"name"`
	OffenderIndicator    string    `gorm:"type:char(1);not null;default:'N'" json:"offender_indicator"` // Y or N
	TelCode              string    `gorm:"type:varchar(5)" json:"tel_code"`
	TelNo                string    `gorm:"type:varchar(20)" json:"tel_no"`
	EmailAddr            string    `gorm:"type:varchar(100)" json:"email_addr"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// OwnerDriverAddr holds one normalized address per source per owner/driver
// role. The furnished_mail row is written by the furnish workflow from the
// application's declared mailing address; the other types come from agency
// data feeds outside this service.
type OwnerDriverAddr struct {
	NoticeNo             string    `gorm:"type:varchar(20);primaryKey" json:"notice_no"`
	OwnerDriverIndicator string    `gorm:"type:char(1);primaryKey" json:"owner_driver_indicator"`
	TypeOfAddress        string    `gorm:"type:varchar(20);primaryKey" json:"type_of_address"`
	BlkHseNo             string    `gorm:"type:varchar(10)" json:"blk_hse_no"`
	FloorNo              string    `gorm:"type:varchar(5)" json:"floor_no"`
	StreetName           string    `gorm:"type:varchar(100)" json:"street_name"`
	UnitNo               string    `gorm:"type:varchar(10)" json:"unit_no"`
	BldgName             string    `gorm:"type:varchar(100)" json:"bldg_name"`
	PostalCode           string    `gorm:"type:varchar(10)" json:"postal_code"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
