package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit step codes for the furnish workflow. Each pipeline step writes one
// ordered event; reconciliation tooling matches them up per txn number
// (an APPLICATION_CREATED with no SUSPENSION_APPLIED signals a partial
// failure needing manual follow-up).
const (
	AuditSubmissionReceived    = "SUBMISSION_RECEIVED"
	AuditValidationCompleted   = "VALIDATION_COMPLETED"
	AuditAutoApprovalCompleted = "AUTO_APPROVAL_COMPLETED"
	AuditApplicationCreated    = "APPLICATION_CREATED"
	AuditDocumentsAttached     = "DOCUMENTS_ATTACHED"
	AuditHirerDriverCreated    = "HIRER_DRIVER_CREATED"
	AuditSuspensionApplied     = "SUSPENSION_APPLIED"
	AuditSuspensionRevived     = "SUSPENSION_REVIVED"
	AuditManualReviewRequired  = "MANUAL_REVIEW_REQUIRED"
	AuditSubmissionCompleted   = "SUBMISSION_COMPLETED"
	AuditApprovalCompleted     = "APPROVAL_COMPLETED"
	AuditRejectionCompleted    = "REJECTION_COMPLETED"
	AuditTechnicalError        = "TECHNICAL_ERROR"
)

// AuditEvent tracks each step of a furnish pipeline run.
type AuditEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TxnNo     string    `gorm:"type:varchar(30);index" json:"txn_no"`
	NoticeNo  string    `gorm:"type:varchar(20);index" json:"notice_no"`
	Step      string    `gorm:"type:varchar(40);not null;index" json:"step"`
	Details   string    `gorm:"type:jsonb" json:"details"` // serialized JSON payload
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
