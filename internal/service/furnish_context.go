package service

import (
	"strings"
	"time"

	"ocms/internal/model"
)

// AutoApprovalCheckType identifies one of the five automated business-rule
// checks a furnish submission must pass to bypass officer review.
type AutoApprovalCheckType string

const (
	CheckIdentityFormat       AutoApprovalCheckType = "IDENTITY_FORMAT"
	CheckConflictingFurnish   AutoApprovalCheckType = "CONFLICTING_FURNISH"
	CheckRentalPeriod         AutoApprovalCheckType = "RENTAL_PERIOD"
	CheckSingleHirerPerPeriod AutoApprovalCheckType = "SINGLE_HIRER_PER_PERIOD"
	CheckBlacklist            AutoApprovalCheckType = "BLACKLIST"
)

// FurnishSubmissionRequest is the eService submission payload.
type FurnishSubmissionRequest struct {
	TxnNo     string `json:"txn_no"` // generated when absent
	NoticeNo  string `json:"notice_no" binding:"required"`
	VehicleNo string `json:"vehicle_no" binding:"required"`

	FurnishName   string `json:"furnish_name" binding:"required"`
	FurnishIDType string `json:"furnish_id_type" binding:"required"`
	FurnishIDNo   string `json:"furnish_id_no" binding:"required"`

	FurnishMailBlkNo      string `json:"furnish_mail_blk_no"`
	FurnishMailFloor      string `json:"furnish_mail_floor"`
	FurnishMailStreetName string `json:"furnish_mail_street_name"`
	FurnishMailUnitNo     string `json:"furnish_mail_unit_no"`
	FurnishMailBldgName   string `json:"furnish_mail_bldg_name"`
	FurnishMailPostalCode string `json:"furnish_mail_postal_code"`

	FurnishTelCode   string `json:"furnish_tel_code"`
	FurnishTelNo     string `json:"furnish_tel_no"`
	FurnishEmailAddr string `json:"furnish_email_addr"`

	OwnerDriverIndicator   string `json:"owner_driver_indicator" binding:"required"`
	HirerOwnerRelationship string `json:"hirer_owner_relationship"`
	OthersRelationshipDesc string `json:"others_relationship_desc"`
	QuesOneAns             string `json:"ques_one_ans"`
	QuesTwoAns             string `json:"ques_two_ans"`
	QuesThreeAns           string `json:"ques_three_ans"`

	RentalPeriodFrom *time.Time `json:"rental_period_from"`
	RentalPeriodTo   *time.Time `json:"rental_period_to"`

	OwnerName         string `json:"owner_name"`
	OwnerIDNo         string `json:"owner_id_no"`
	OwnerTelCode      string `json:"owner_tel_code"`
	OwnerTelNo        string `json:"owner_tel_no"`
	OwnerEmailAddr    string `json:"owner_email_addr"`
	CorppassStaffName string `json:"corppass_staff_name"`

	DocumentReferences []string `json:"document_references"`
}

// AutoApprovalFailure is one failed check with its officer-readable reason.
type AutoApprovalFailure struct {
	CheckType AutoApprovalCheckType `json:"check_type"`
	Reason    string                `json:"reason"`
}

// FurnishContext is the mutable unit of work threaded through one submission
// pipeline run. It is created per request and never shared.
type FurnishContext struct {
	Request *FurnishSubmissionRequest

	// Snapshots read at pipeline start
	Notice               *model.OffenceNotice
	ExistingOwnerDrivers []model.OwnerDriver

	// Accumulated results
	Application    *model.FurnishApplication
	NewOwnerDriver *model.OwnerDriver
	Failures       []AutoApprovalFailure

	IsResubmission           bool
	AutoApprovalPassed       bool
	OwnerDriverRecordCreated bool
	SuspensionApplied        bool
}

func NewFurnishContext(req *FurnishSubmissionRequest) *FurnishContext {
	return &FurnishContext{Request: req}
}

// AddFailure appends a failed auto-approval check. Checks never short-circuit,
// so the list reflects every violated rule in evaluation order.
func (c *FurnishContext) AddFailure(checkType AutoApprovalCheckType, reason string) {
	c.Failures = append(c.Failures, AutoApprovalFailure{CheckType: checkType, Reason: reason})
}

func (c *FurnishContext) HasFailures() bool {
	return len(c.Failures) > 0
}

// FailureSummary joins every failure reason into the officer-facing review text.
func (c *FurnishContext) FailureSummary() string {
	reasons := make([]string, 0, len(c.Failures))
	for _, f := range c.Failures {
		reasons = append(reasons, f.Reason)
	}
	return strings.Join(reasons, "; ")
}
