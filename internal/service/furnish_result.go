package service

import "ocms/internal/model"

// Error type discriminants serialized to clients.
const (
	ErrorTypeValidation = "VALIDATION_ERROR"
	ErrorTypeBusiness   = "BUSINESS_ERROR"
	ErrorTypeTechnical  = "TECHNICAL_ERROR"
	ErrorTypeNotFound   = "NOT_FOUND"
)

// Business error reason codes.
const (
	ReasonAutoApprovalFailed  = "AUTO_APPROVAL_FAILED"
	ReasonAlreadyApproved     = "ALREADY_APPROVED"
	ReasonAlreadyRejected     = "ALREADY_REJECTED"
	ReasonPermanentSuspension = "PERMANENT_SUSPENSION"
)

// FurnishResult is the closed outcome set of the furnish pipelines. Exactly
// four variants exist; callers branch exhaustively on the concrete type and
// must never rely on HTTP status alone.
type FurnishResult interface {
	furnishResult()
}

// Success is the terminal happy path. It carries enough data for the caller
// to avoid a follow-up read; flags that do not apply to a given pipeline stay
// false.
type Success struct {
	Application              *model.FurnishApplication `json:"application,omitempty"`
	AutoApproved             bool                      `json:"auto_approved"`
	HirerDriverRecordCreated bool                      `json:"hirer_driver_record_created"`
	SuspensionApplied        bool                      `json:"suspension_applied"`
	SuspensionRevived        bool                      `json:"suspension_revived"`
	EmailSentToOwner         bool                      `json:"email_sent_to_owner"`
	EmailSentToFurnished     bool                      `json:"email_sent_to_furnished"`
	SmsSentToFurnished       bool                      `json:"sms_sent_to_furnished"`
	NoticeResentToPortal     bool                      `json:"notice_resent_to_portal"`
	Message                  string                    `json:"message"`
}

// ValidationError reports malformed or referentially invalid input. No
// durable write has occurred; the caller can fix the request and retry.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// BusinessError reports a well-formed request that violates a business
// invariant. The submission pipeline still writes the application row on this
// path, so the partially-created record is attached for reference.
type BusinessError struct {
	CheckType            string                    `json:"check_type"`
	Message              string                    `json:"message"`
	RequiresManualReview bool                      `json:"requires_manual_review"`
	Application          *model.FurnishApplication `json:"application,omitempty"`
}

// TechnicalError reports an infrastructure or unexpected failure with enough
// detail for operator triage. The whole request is safe to retry.
type TechnicalError struct {
	Operation string         `json:"operation"`
	Message   string         `json:"message"`
	Cause     string         `json:"cause"`
	Details   map[string]any `json:"details"`
}

func (Success) furnishResult()         {}
func (ValidationError) furnishResult() {}
func (BusinessError) furnishResult()   {}
func (TechnicalError) furnishResult()  {}
