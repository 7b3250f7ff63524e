package service

import (
	"context"
	"encoding/json"
	"log"

	"ocms/internal/model"
	"ocms/internal/repository"
)

// EventBroadcaster pushes workflow events to connected officer dashboards.
// Satisfied by the websocket hub; a no-op implementation is fine in tests.
type EventBroadcaster interface {
	BroadcastEvent(msg []byte)
}

// FurnishAuditService emits one ordered audit event per pipeline step.
// Events are the reconciliation trail for crash-consistency gaps: an
// APPLICATION_CREATED with no matching SUSPENSION_APPLIED for the same txn
// signals a partial failure. Audit failures are logged and never abort the
// pipeline.
type FurnishAuditService struct {
	auditRepo repository.AuditRepository
	hub       EventBroadcaster
}

func NewFurnishAuditService(auditRepo repository.AuditRepository, hub EventBroadcaster) *FurnishAuditService {
	return &FurnishAuditService{auditRepo: auditRepo, hub: hub}
}

// History returns the ordered audit trail for one application.
func (s *FurnishAuditService) History(ctx context.Context, txnNo string) ([]model.AuditEvent, error) {
	return s.auditRepo.FindByTxnNo(ctx, txnNo)
}

// ListEvents returns the workflow-wide audit feed, newest first.
func (s *FurnishAuditService) ListEvents(ctx context.Context, page, limit int) ([]model.AuditEvent, int64, error) {
	return s.auditRepo.List(ctx, page, limit)
}

func (s *FurnishAuditService) record(ctx context.Context, step, txnNo, noticeNo string, details map[string]any) {
	payload, _ := json.Marshal(details)

	event := &model.AuditEvent{
		TxnNo:    txnNo,
		NoticeNo: noticeNo,
		Step:     step,
		Details:  string(payload),
	}
	if err := s.auditRepo.Create(ctx, event); err != nil {
		log.Printf("WARNING: failed to write audit event %s for notice %s: %v", step, noticeNo, err)
	}

	if s.hub != nil {
		msg, _ := json.Marshal(map[string]any{
			"step":      step,
			"txn_no":    txnNo,
			"notice_no": noticeNo,
			"details":   details,
		})
		s.hub.BroadcastEvent(msg)
	}
}

func (s *FurnishAuditService) LogSubmissionReceived(ctx context.Context, req *FurnishSubmissionRequest) {
	s.record(ctx, model.AuditSubmissionReceived, req.TxnNo, req.NoticeNo, map[string]any{
		"vehicle_no": req.VehicleNo,
		"indicator":  req.OwnerDriverIndicator,
	})
}

func (s *FurnishAuditService) LogValidationCompleted(ctx context.Context, noticeNo string, passed bool, reason string) {
	details := map[string]any{"passed": passed}
	if reason != "" {
		details["reason"] = reason
	}
	s.record(ctx, model.AuditValidationCompleted, "", noticeNo, details)
}

func (s *FurnishAuditService) LogAutoApprovalCompleted(ctx context.Context, fc *FurnishContext) {
	s.record(ctx, model.AuditAutoApprovalCompleted, "", fc.Request.NoticeNo, map[string]any{
		"passed":        fc.AutoApprovalPassed,
		"failure_count": len(fc.Failures),
		"failures":      fc.Failures,
	})
}

func (s *FurnishAuditService) LogApplicationCreated(ctx context.Context, app *model.FurnishApplication, isResubmission bool) {
	s.record(ctx, model.AuditApplicationCreated, app.TxnNo, app.NoticeNo, map[string]any{
		"status":          app.Status,
		"is_resubmission": isResubmission,
	})
}

func (s *FurnishAuditService) LogDocumentsAttached(ctx context.Context, txnNo, noticeNo string, count int) {
	s.record(ctx, model.AuditDocumentsAttached, txnNo, noticeNo, map[string]any{"count": count})
}

func (s *FurnishAuditService) LogHirerDriverCreated(ctx context.Context, txnNo, noticeNo, furnishIDNo, indicator string) {
	s.record(ctx, model.AuditHirerDriverCreated, txnNo, noticeNo, map[string]any{
		"furnish_id_no": furnishIDNo,
		"indicator":     indicator,
	})
}

func (s *FurnishAuditService) LogSuspensionApplied(ctx context.Context, txnNo, noticeNo string) {
	s.record(ctx, model.AuditSuspensionApplied, txnNo, noticeNo, map[string]any{
		"suspension_type": model.SuspensionTypeTemporary,
		"reason":          model.SuspensionReasonPDP,
		"window_days":     model.TsPdpWindowDays,
	})
}

func (s *FurnishAuditService) LogSuspensionRevived(ctx context.Context, txnNo, noticeNo, officerID string) {
	s.record(ctx, model.AuditSuspensionRevived, txnNo, noticeNo, map[string]any{"officer_id": officerID})
}

func (s *FurnishAuditService) LogManualReviewRequired(ctx context.Context, txnNo, noticeNo, reasons string) {
	s.record(ctx, model.AuditManualReviewRequired, txnNo, noticeNo, map[string]any{"reasons": reasons})
}

func (s *FurnishAuditService) LogSubmissionCompleted(ctx context.Context, fc *FurnishContext) {
	txnNo := ""
	if fc.Application != nil {
		txnNo = fc.Application.TxnNo
	}
	s.record(ctx, model.AuditSubmissionCompleted, txnNo, fc.Request.NoticeNo, map[string]any{
		"auto_approved":       fc.AutoApprovalPassed,
		"is_resubmission":     fc.IsResubmission,
		"owner_driver_created": fc.OwnerDriverRecordCreated,
		"suspension_applied":  fc.SuspensionApplied,
	})
}

func (s *FurnishAuditService) LogApprovalCompleted(ctx context.Context, txnNo, noticeNo, officerID string) {
	s.record(ctx, model.AuditApprovalCompleted, txnNo, noticeNo, map[string]any{"officer_id": officerID})
}

func (s *FurnishAuditService) LogRejectionCompleted(ctx context.Context, txnNo, noticeNo, officerID, reason string) {
	s.record(ctx, model.AuditRejectionCompleted, txnNo, noticeNo, map[string]any{
		"officer_id": officerID,
		"reason":     reason,
	})
}

func (s *FurnishAuditService) LogTechnicalError(ctx context.Context, operation, txnNo, noticeNo string, err error) {
	s.record(ctx, model.AuditTechnicalError, txnNo, noticeNo, map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
}
