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

// FurnishApprovalRequest carries an officer's approval decision together with
// the notification channels to fire.
type FurnishApprovalRequest struct {
	ApprovalRemarks string `json:"approval_remarks"`
	EmailOwner      bool   `json:"email_owner"`
	EmailFurnished  bool   `json:"email_furnished"`
	SmsFurnished    bool   `json:"sms_furnished"`
}

// FurnishApprovalService finalizes a pending application as approved: the
// furnished party becomes the current offender, the TS-PDP suspension is
// revived and the configured notifications go out.
type FurnishApprovalService struct {
	applicationRepo repository.FurnishApplicationRepository
	persistence     *FurnishPersistenceService
	dashboard       *FurnishDashboardService
	notification    *FurnishNotificationService
	audit           *FurnishAuditService
	tm              repository.TransactionManager

	now func() time.Time
}

func NewFurnishApprovalService(
	applicationRepo repository.FurnishApplicationRepository,
	persistence *FurnishPersistenceService,
	dashboard *FurnishDashboardService,
	notification *FurnishNotificationService,
	audit *FurnishAuditService,
	tm repository.TransactionManager,
) *FurnishApprovalService {
	return &FurnishApprovalService{
		applicationRepo: applicationRepo,
		persistence:     persistence,
		dashboard:       dashboard,
		notification:    notification,
		audit:           audit,
		tm:              tm,
		now:             time.Now,
	}
}

const opFurnishApproval = "furnish approval"

// Approve moves a pending application to approved on behalf of an officer.
// The offender transfer, suspension revival and status change commit
// atomically; notification failures afterwards only clear their flags.
func (s *FurnishApprovalService) Approve(ctx context.Context, txnNo, officerID string, req *FurnishApprovalRequest) FurnishResult {
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
			Message:   fmt.Sprintf("application %s has already been approved", txnNo),
		}
	case model.FurnishStatusRejected:
		return BusinessError{
			CheckType: ReasonAlreadyRejected,
			Message:   fmt.Sprintf("application %s has already been rejected and cannot be approved", txnNo),
		}
	}

	permanent, err := s.persistence.HasActivePermanentSuspension(ctx, app.NoticeNo)
	if err != nil {
		return s.technicalError(ctx, app, err)
	}
	if permanent {
		return BusinessError{
			CheckType: ReasonPermanentSuspension,
			Message:   fmt.Sprintf("notice %s is permanently suspended and cannot be furnished", app.NoticeNo),
		}
	}

	fc := contextFromApplication(app)

	remark := fmt.Sprintf("Approved by %s on %s", officerID, s.now().UTC().Format("2006-01-02 15:04:05"))
	if req.ApprovalRemarks != "" {
		remark += " - " + req.ApprovalRemarks
	}

	if err := s.tm.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := s.persistence.CreateHirerDriverRecord(txCtx, fc)
		if err != nil {
			return err
		}
		fc.NewOwnerDriver = record

		if err := s.persistence.ReviveTsPdpSuspension(txCtx, app.NoticeNo, officerID); err != nil {
			return err
		}

		app.Status = model.FurnishStatusApproved
		if app.Remarks != "" {
			app.Remarks += "\n"
		}
		app.Remarks += remark
		return s.applicationRepo.Update(txCtx, app)
	}); err != nil {
		return s.technicalError(ctx, app, err)
	}

	s.audit.LogHirerDriverCreated(ctx, app.TxnNo, app.NoticeNo, app.FurnishIDNo, app.OwnerDriverIndicator)
	s.audit.LogSuspensionRevived(ctx, app.TxnNo, app.NoticeNo, officerID)
	s.audit.LogApprovalCompleted(ctx, app.TxnNo, app.NoticeNo, officerID)

	emailOwner, emailFurnished, smsFurnished := s.sendApprovalNotifications(ctx, app, officerID, req)

	return Success{
		Application:              app,
		HirerDriverRecordCreated: true,
		SuspensionRevived:        true,
		EmailSentToOwner:         emailOwner,
		EmailSentToFurnished:     emailFurnished,
		SmsSentToFurnished:       smsFurnished,
		Message:                  fmt.Sprintf("Furnish application %s approved", app.TxnNo),
	}
}

// sendApprovalNotifications fires the requested channels. Every channel is
// best effort and independent of the others.
func (s *FurnishApprovalService) sendApprovalNotifications(ctx context.Context, app *model.FurnishApplication, officerID string, req *FurnishApprovalRequest) (emailOwner, emailFurnished, smsFurnished bool) {
	if !req.EmailOwner && !req.EmailFurnished && !req.SmsFurnished {
		return false, false, false
	}

	detail, err := s.dashboard.GetApplicationDetail(ctx, app.TxnNo)
	if err != nil {
		log.Printf("Failed to load application detail for approval notifications %s: %v", app.TxnNo, err)
		return false, false, false
	}

	if req.EmailOwner {
		if app.OwnerEmailAddr == "" {
			log.Printf("No owner email address on application %s, skipping owner email", app.TxnNo)
		} else {
			subject := GenerateApprovalEmailSubject(app.NoticeNo)
			body := GenerateEmailContent(TemplateOwnerApprovalConfirmation, detail, officerID)
			emailOwner = s.notification.SendAndRecordEmail(ctx, app.NoticeNo, detail.CurrentProcessingStage, app.OwnerEmailAddr, subject, body)
		}
	}

	if req.EmailFurnished {
		if app.FurnishEmailAddr == "" {
			log.Printf("No furnished party email address on application %s, skipping furnished email", app.TxnNo)
		} else {
			template := TemplateHirerFurnished
			if app.OwnerDriverIndicator == model.IndicatorDriver {
				template = TemplateDriverFurnished
			}
			subject := GenerateApprovalEmailSubject(app.NoticeNo)
			body := GenerateEmailContent(template, detail, officerID)
			emailFurnished = s.notification.SendAndRecordEmail(ctx, app.NoticeNo, detail.CurrentProcessingStage, app.FurnishEmailAddr, subject, body)
		}
	}

	if req.SmsFurnished {
		if app.FurnishTelNo == "" {
			log.Printf("No furnished party mobile number on application %s, skipping SMS", app.TxnNo)
		} else {
			content := GenerateDriverFurnishedSms(detail)
			smsFurnished = s.notification.SendAndRecordSms(ctx, app.NoticeNo, detail.CurrentProcessingStage, app.FurnishTelCode, app.FurnishTelNo, content)
		}
	}

	return emailOwner, emailFurnished, smsFurnished
}

// contextFromApplication rebuilds the pipeline context from a stored
// application so the manual-approval path reuses the auto-approval
// persistence steps unchanged.
func contextFromApplication(app *model.FurnishApplication) *FurnishContext {
	fc := NewFurnishContext(&FurnishSubmissionRequest{
		TxnNo:     app.TxnNo,
		NoticeNo:  app.NoticeNo,
		VehicleNo: app.VehicleNo,

		FurnishName:   app.FurnishName,
		FurnishIDType: app.FurnishIDType,
		FurnishIDNo:   app.FurnishIDNo,

		FurnishMailBlkNo:      app.FurnishMailBlkNo,
		FurnishMailFloor:      app.FurnishMailFloor,
		FurnishMailStreetName: app.FurnishMailStreetName,
		FurnishMailUnitNo:     app.FurnishMailUnitNo,
		FurnishMailBldgName:   app.FurnishMailBldgName,
		FurnishMailPostalCode: app.FurnishMailPostalCode,

		FurnishTelCode:   app.FurnishTelCode,
		FurnishTelNo:     app.FurnishTelNo,
		FurnishEmailAddr: app.FurnishEmailAddr,

		OwnerDriverIndicator:   app.OwnerDriverIndicator,
		HirerOwnerRelationship: app.HirerOwnerRelationship,
		OthersRelationshipDesc: app.OthersRelationshipDesc,
		QuesOneAns:             app.QuesOneAns,
		QuesTwoAns:             app.QuesTwoAns,
		QuesThreeAns:           app.QuesThreeAns,

		RentalPeriodFrom: app.RentalPeriodFrom,
		RentalPeriodTo:   app.RentalPeriodTo,

		OwnerName:      app.OwnerName,
		OwnerIDNo:      app.OwnerIDNo,
		OwnerTelCode:   app.OwnerTelCode,
		OwnerTelNo:     app.OwnerTelNo,
		OwnerEmailAddr: app.OwnerEmailAddr,
	})
	fc.Application = app
	return fc
}

func (s *FurnishApprovalService) technicalError(ctx context.Context, app *model.FurnishApplication, err error) TechnicalError {
	s.audit.LogTechnicalError(ctx, opFurnishApproval, app.TxnNo, app.NoticeNo, err)
	log.Printf("Technical error during %s for %s: %v", opFurnishApproval, app.TxnNo, err)
	return TechnicalError{
		Operation: opFurnishApproval,
		Message:   err.Error(),
		Cause:     rootCauseType(err),
		Details: map[string]any{
			"txn_no":    app.TxnNo,
			"notice_no": app.NoticeNo,
		},
	}
}
