package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ocms/internal/repository"
)

// FurnishSubmissionService orchestrates the eService submission pipeline:
//
//  1. Audit submission received
//  2. Build a fresh context
//  3. Basic business rules (ValidationError on failure, nothing persisted)
//  4. Resubmission flag
//  5. Auto-approval checks (all five, never short-circuits)
//  6. Create the application row (always, regardless of step 5)
//  7. Persist document references, if any
//  8. Auto-approved: hirer/driver record + suspension; otherwise suspension
//     only and BusinessError requiring manual review
//  9. Unexpected failures convert to TechnicalError at this level only
//
// Steps 6-8 commit atomically through the transaction manager.
type FurnishSubmissionService struct {
	validator   *FurnishValidator
	persistence *FurnishPersistenceService
	audit       *FurnishAuditService
	tm          repository.TransactionManager
}

func NewFurnishSubmissionService(
	validator *FurnishValidator,
	persistence *FurnishPersistenceService,
	audit *FurnishAuditService,
	tm repository.TransactionManager,
) *FurnishSubmissionService {
	return &FurnishSubmissionService{
		validator:   validator,
		persistence: persistence,
		audit:       audit,
		tm:          tm,
	}
}

const opFurnishSubmission = "furnish submission"

// Submit runs the full submission pipeline and returns one of the four
// result variants.
func (s *FurnishSubmissionService) Submit(ctx context.Context, req *FurnishSubmissionRequest) FurnishResult {
	// Step 1: audit receipt before any processing.
	s.audit.LogSubmissionReceived(ctx, req)

	// Step 2: fresh request-scoped context.
	fc := NewFurnishContext(req)

	// Step 3: basic business rules. A violation returns immediately with no
	// durable write.
	if err := s.validator.ValidateBasicBusinessRules(ctx, fc); err != nil {
		var violation *RuleViolation
		if errors.As(err, &violation) {
			s.audit.LogValidationCompleted(ctx, req.NoticeNo, false, violation.Message)
			return ValidationError{Field: violation.Field, Message: violation.Message}
		}
		return s.technicalError(ctx, fc, err)
	}
	s.audit.LogValidationCompleted(ctx, req.NoticeNo, true, "")

	// Step 4: resubmission is informational only.
	isResubmission, err := s.persistence.IsResubmission(ctx, req.NoticeNo)
	if err != nil {
		return s.technicalError(ctx, fc, err)
	}
	fc.IsResubmission = isResubmission

	// Step 5: all five auto-approval checks.
	if err := s.validator.PerformAutoApprovalChecks(ctx, fc); err != nil {
		return s.technicalError(ctx, fc, err)
	}
	s.audit.LogAutoApprovalCompleted(ctx, fc)

	// Steps 6-8: durable writes commit as one unit.
	err = s.tm.RunInTx(ctx, func(txCtx context.Context) error {
		app, err := s.persistence.CreateFurnishApplication(txCtx, fc)
		if err != nil {
			return err
		}
		fc.Application = app
		s.audit.LogApplicationCreated(txCtx, app, isResubmission)

		if len(req.DocumentReferences) > 0 {
			if err := s.persistence.CreateApplicationDocuments(txCtx, app.TxnNo, req.DocumentReferences); err != nil {
				return err
			}
			s.audit.LogDocumentsAttached(txCtx, app.TxnNo, req.NoticeNo, len(req.DocumentReferences))
		}

		if fc.AutoApprovalPassed {
			ownerDriver, err := s.persistence.CreateHirerDriverRecord(txCtx, fc)
			if err != nil {
				return err
			}
			fc.NewOwnerDriver = ownerDriver
			fc.OwnerDriverRecordCreated = true
			s.audit.LogHirerDriverCreated(txCtx, app.TxnNo, req.NoticeNo, req.FurnishIDNo, req.OwnerDriverIndicator)
		}

		// The processing clock is held on both branches.
		if err := s.persistence.ApplyTsPdpSuspension(txCtx, req.NoticeNo); err != nil {
			return err
		}
		fc.SuspensionApplied = true
		s.audit.LogSuspensionApplied(txCtx, app.TxnNo, req.NoticeNo)

		return nil
	})
	if err != nil {
		return s.technicalError(ctx, fc, err)
	}

	// Step 9: completion audit and result.
	if fc.AutoApprovalPassed {
		s.audit.LogSubmissionCompleted(ctx, fc)
		return Success{
			Application:              fc.Application,
			AutoApproved:             true,
			HirerDriverRecordCreated: true,
			SuspensionApplied:        true,
			Message:                  "Furnish submission auto-approved successfully",
		}
	}

	s.audit.LogManualReviewRequired(ctx, fc.Application.TxnNo, req.NoticeNo, fc.FailureSummary())
	s.audit.LogSubmissionCompleted(ctx, fc)
	return BusinessError{
		CheckType:            ReasonAutoApprovalFailed,
		Message:              "Furnish submission requires manual review: " + fc.FailureSummary(),
		RequiresManualReview: true,
		Application:          fc.Application,
	}
}

// technicalError is the single point where unexpected failures become the
// TechnicalError variant. Inner steps return errors or mutate the context,
// never both wrap and convert.
func (s *FurnishSubmissionService) technicalError(ctx context.Context, fc *FurnishContext, err error) TechnicalError {
	req := fc.Request
	txnNo := req.TxnNo
	if fc.Application != nil {
		txnNo = fc.Application.TxnNo
	}

	log.Printf("ERROR: %s failed for notice %s: %v", opFurnishSubmission, req.NoticeNo, err)
	s.audit.LogTechnicalError(ctx, opFurnishSubmission, txnNo, req.NoticeNo, err)

	return TechnicalError{
		Operation: opFurnishSubmission,
		Message:   fmt.Sprintf("Technical error during %s: %v", opFurnishSubmission, err),
		Cause:     rootCauseType(err),
		Details: map[string]any{
			"txn_no":    txnNo,
			"notice_no": req.NoticeNo,
			"message":   err.Error(),
		},
	}
}

// rootCauseType names the innermost error's concrete type for triage.
func rootCauseType(err error) string {
	cause := err
	for {
		next := errors.Unwrap(cause)
		if next == nil {
			return fmt.Sprintf("%T", cause)
		}
		cause = next
	}
}
