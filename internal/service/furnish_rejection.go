package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ocms/internal/model"
	"ocms/internal/repository"

	"gorm.io/gorm"
)

// FurnishRejectionRequest carries an officer's rejection decision.
type FurnishRejectionRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
	RejectionDetail string `json:"rejection_detail"`
	SendEmail       bool   `json:"send_email"`
	EmailTemplateID string `json:"email_template_id"`
	EmailSubject    string `json:"email_subject"`
	EmailContent    string `json:"email_content"`
}

// FurnishRejectionService finalizes a pending application as rejected. The
// TS-PDP suspension stays in place; only an approval revives it.
type FurnishRejectionService struct {
	applicationRepo repository.FurnishApplicationRepository
	dashboard       *FurnishDashboardService
	notification    *FurnishNotificationService
	portal          PortalClient
	audit           *FurnishAuditService
	tm              repository.TransactionManager

	now func() time.Time
}

func NewFurnishRejectionService(
	applicationRepo repository.FurnishApplicationRepository,
	dashboard *FurnishDashboardService,
	notification *FurnishNotificationService,
	portal PortalClient,
	audit *FurnishAuditService,
	tm repository.TransactionManager,
) *FurnishRejectionService {
	return &FurnishRejectionService{
		applicationRepo: applicationRepo,
		dashboard:       dashboard,
		notification:    notification,
		portal:          portal,
		audit:           audit,
		tm:              tm,
		now:             time.Now,
	}
}

const opFurnishRejection = "furnish rejection"

// Reject moves a pending application to rejected on behalf of an officer.
// Email and portal notification failures are recorded but never roll back the
// status change.
func (s *FurnishRejectionService) Reject(ctx context.Context, txnNo, officerID string, req *FurnishRejectionRequest) FurnishResult {
	app, err := s.applicationRepo.FindByTxnNo(ctx, txnNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationError{Field: "txnNo", Message: fmt.Sprintf("furnish application not found: %s", txnNo)}
		}
		return s.technicalError(ctx, &model.FurnishApplication{TxnNo: txnNo},
			fmt.Errorf("failed to load furnish application: %w", err))
	}

	switch app.Status {
	case model.FurnishStatusApproved:
		return BusinessError{
			CheckType: ReasonAlreadyApproved,
			Message:   fmt.Sprintf("application %s has already been approved and cannot be rejected", txnNo),
		}
	case model.FurnishStatusRejected:
		return BusinessError{
			CheckType: ReasonAlreadyRejected,
			Message:   fmt.Sprintf("application %s has already been rejected", txnNo),
		}
	}

	// The owner email goes out before the status flips. A send failure does
	// not block the rejection; a rejection write failure after a sent email
	// is accepted and visible in the audit trail.
	emailSent := false
	if req.SendEmail {
		emailSent = s.sendRejectionEmail(ctx, app, officerID, req)
	}

	remark := fmt.Sprintf("Rejected by %s on %s - Reason: %s",
		officerID, s.now().UTC().Format("2006-01-02 15:04:05"), req.RejectionReason)
	if req.RejectionDetail != "" {
		remark += " - " + req.RejectionDetail
	}

	app.Status = model.FurnishStatusRejected
	if app.Remarks != "" {
		app.Remarks += "\n"
	}
	app.Remarks += remark

	if err := s.tm.RunInTx(ctx, func(txCtx context.Context) error {
		return s.applicationRepo.Update(txCtx, app)
	}); err != nil {
		return s.technicalError(ctx, app, err)
	}

	s.audit.LogRejectionCompleted(ctx, app.TxnNo, app.NoticeNo, officerID, req.RejectionReason)

	// Best effort: let the portal re-surface the notice to the owner.
	portalNotified := false
	if err := s.portal.ResendNoticeToPortal(ctx, app.NoticeNo); err != nil {
		log.Printf("Failed to resend notice %s to portal: %v", app.NoticeNo, err)
	} else {
		portalNotified = true
	}

	return Success{
		Application:          app,
		EmailSentToOwner:     emailSent,
		NoticeResentToPortal: portalNotified,
		Message:              fmt.Sprintf("Furnish application %s rejected", app.TxnNo),
	}
}

func (s *FurnishRejectionService) sendRejectionEmail(ctx context.Context, app *model.FurnishApplication, officerID string, req *FurnishRejectionRequest) bool {
	if app.OwnerEmailAddr == "" {
		log.Printf("No owner email address on application %s, skipping rejection email", app.TxnNo)
		return false
	}

	detail, err := s.dashboard.GetApplicationDetail(ctx, app.TxnNo)
	if err != nil {
		log.Printf("Failed to load application detail for rejection email %s: %v", app.TxnNo, err)
		return false
	}

	subject := req.EmailSubject
	if subject == "" {
		subject = GenerateRejectionEmailSubject(app.NoticeNo)
	}
	body := req.EmailContent
	if body == "" {
		body = GenerateEmailContent(RejectionTemplateFor(req.EmailTemplateID), detail, officerID)
	}

	return s.notification.SendAndRecordEmail(ctx, app.NoticeNo, detail.CurrentProcessingStage, app.OwnerEmailAddr, subject, body)
}

func (s *FurnishRejectionService) technicalError(ctx context.Context, app *model.FurnishApplication, err error) TechnicalError {
	s.audit.LogTechnicalError(ctx, opFurnishRejection, app.TxnNo, app.NoticeNo, err)
	log.Printf("Technical error during %s for %s: %v", opFurnishRejection, app.TxnNo, err)
	return TechnicalError{
		Operation: opFurnishRejection,
		Message:   err.Error(),
		Cause:     rootCauseType(err),
		Details: map[string]any{
			"txn_no":    app.TxnNo,
			"notice_no": app.NoticeNo,
		},
	}
}
