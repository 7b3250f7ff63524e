package model

import (
	"time"
)

// Furnish application status codes
const (
	FurnishStatusPending  = "P"
	FurnishStatusApproved = "A"
	FurnishStatusRejected = "R"
)

// Owner/driver indicator codes (who is being furnished)
const (
	IndicatorHirer  = "H"
	IndicatorDriver = "D"
)

// Accepted furnish ID types
const (
	IDTypeNRIC     = "NRIC"
	IDTypeFIN      = "FIN"
	IDTypeUEN      = "UEN"
	IDTypePassport = "PASSPORT"
)

// FurnishApplication is one submission attempt by a vehicle owner declaring
// the actual hirer or driver for an offence notice. Rows are never edited
// after creation except for the officer-driven status/remarks transition.
type FurnishApplication struct {
	TxnNo       string    `gorm:"type:varchar(30);primaryKey" json:"txn_no"`
	NoticeNo    string    `gorm:"type:varchar(20);not null;index" json:"notice_no"`
	VehicleNo   string    `gorm:"type:varchar(20);not null" json:"vehicle_no"`
	OffenceDate time.Time `gorm:"not null" json:"offence_date"`
	PpCode      string    `gorm:"type:varchar(10)" json:"pp_code"`
	PpName      string    `gorm:"type:varchar(100)" json:"pp_name"`

	// Furnished person particulars
	FurnishName   string `gorm:"type:varchar(100);not null" json:"furnish_name"`
	FurnishIDType string `gorm:"type:varchar(10);not null" json:"furnish_id_type"`
	FurnishIDNo   string `gorm:"type:varchar(20);not null;index" json:"furnish_id_no"`

	// Furnished person mailing address
	FurnishMailBlkNo      string `gorm:"type:varchar(10)" json:"furnish_mail_blk_no"`
	FurnishMailFloor      string `gorm:"type:varchar(5)" json:"furnish_mail_floor"`
	FurnishMailStreetName string `gorm:"type:varchar(100)" json:"furnish_mail_street_name"`
	FurnishMailUnitNo     string `gorm:"type:varchar(10)" json:"furnish_mail_unit_no"`
	FurnishMailBldgName   string `gorm:"type:varchar(100)" json:"furnish_mail_bldg_name"`
	FurnishMailPostalCode string `gorm:"type:varchar(10)" json:"furnish_mail_postal_code"`

	// Furnished person contact
	FurnishTelCode   string `gorm:"type:varchar(5)" json:"furnish_tel_code"`
	FurnishTelNo     string `gorm:"type:varchar(20)" json:"furnish_tel_no"`
	FurnishEmailAddr string `gorm:"type:varchar(100)" json:"furnish_email_addr"`

	// Relationship and questionnaire
	OwnerDriverIndicator   string `gorm:"type:char(1);not null" json:"owner_driver_indicator"` // H or D
	HirerOwnerRelationship string `gorm:"type:varchar(30)" json:"hirer_owner_relationship"`
	OthersRelationshipDesc string `gorm:"type:varchar(100)" json:"others_relationship_desc"`
	QuesOneAns             string `gorm:"type:text" json:"ques_one_ans"`
	QuesTwoAns             string `gorm:"type:text" json:"ques_two_ans"`
	QuesThreeAns           string `gorm:"type:text" json:"ques_three_ans"`

	// Rental period (hirer furnishing only)
	RentalPeriodFrom *time.Time `json:"rental_period_from"`
	RentalPeriodTo   *time.Time `json:"rental_period_to"`

	// Submitter (owner/furnisher) particulars
	OwnerName         string `gorm:"type:varchar(100)" json:"owner_name"`
	OwnerIDNo         string `gorm:"type:varchar(20)" json:"owner_id_no"`
	OwnerTelCode      string `gorm:"type:varchar(5)" json:"owner_tel_code"`
	OwnerTelNo        string `gorm:"type:varchar(20)" json:"owner_tel_no"`
	OwnerEmailAddr    string `gorm:"type:varchar(100)" json:"owner_email_addr"`
	CorppassStaffName string `gorm:"type:varchar(100)" json:"corppass_staff_name"`

	Status          string `gorm:"type:char(1);not null;default:'P';index" json:"status"` // P, A, R
	ReasonForReview string `gorm:"type:text" json:"reason_for_review"`
	Remarks         string `gorm:"type:text" json:"remarks"` // append-only audit text

	CreatedAt time.Time `gorm:"index" json:"created_at"` // submission timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// FurnishApplicationDoc links a furnish application to an uploaded attachment
// held in blob storage.
type FurnishApplicationDoc struct {
	TxnNo        string `gorm:"type:varchar(30);primaryKey" json:"txn_no"`
	AttachmentID int    `gorm:"primaryKey" json:"attachment_id"`
	DocName      string `gorm:"type:varchar(255);not null" json:"doc_name"` // blob storage path
}
