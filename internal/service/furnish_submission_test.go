package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ocms/internal/model"
)

type FurnishSubmissionSuite struct {
	suite.Suite
	ctx context.Context

	noticeRepo      *fakeNoticeRepo
	ownerDriverRepo *fakeOwnerDriverRepo
	applicationRepo *fakeApplicationRepo
	blacklistRepo   *fakeBlacklistRepo
	docRepo         *fakeDocRepo
	suspensionRepo  *fakeSuspensionRepo
	auditRepo       *fakeAuditRepo

	submission *FurnishSubmissionService
}

func (s *FurnishSubmissionSuite) SetupTest() {
	s.ctx = context.Background()
	s.noticeRepo = newFakeNoticeRepo()
	s.ownerDriverRepo = &fakeOwnerDriverRepo{}
	s.applicationRepo = newFakeApplicationRepo()
	s.blacklistRepo = newFakeBlacklistRepo()
	s.docRepo = &fakeDocRepo{}
	s.suspensionRepo = &fakeSuspensionRepo{}
	s.auditRepo = &fakeAuditRepo{}

	validator := NewFurnishValidator(s.noticeRepo, s.ownerDriverRepo, s.applicationRepo, s.blacklistRepo)
	persistence := NewFurnishPersistenceService(s.applicationRepo, s.docRepo, s.ownerDriverRepo, s.suspensionRepo)
	audit := NewFurnishAuditService(s.auditRepo, noopBroadcaster{})
	s.submission = NewFurnishSubmissionService(validator, persistence, audit, passthroughTxManager{})

	s.noticeRepo.add(model.OffenceNotice{
		NoticeNo:               "N200001",
		VehicleNo:              "SKV5678B",
		OffenceDate:            time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC),
		PpCode:                 "PP01",
		PpName:                 "Orchard Car Park",
		CurrentProcessingStage: model.StageReminder1,
	})
}

func TestFurnishSubmissionSuite(t *testing.T) {
	suite.Run(t, new(FurnishSubmissionSuite))
}

func (s *FurnishSubmissionSuite) validRequest() *FurnishSubmissionRequest {
	return &FurnishSubmissionRequest{
		NoticeNo:             "N200001",
		VehicleNo:            "SKV5678B",
		FurnishName:          "Lim Mei Ling",
		FurnishIDType:        model.IDTypeNRIC,
		FurnishIDNo:          "S1234567D",
		FurnishEmailAddr:     "mei.ling@example.com",
		OwnerDriverIndicator: model.IndicatorDriver,
		OwnerName:            "Acme Rentals Pte Ltd",
		OwnerEmailAddr:       "fleet@acme.example.com",
	}
}

func (s *FurnishSubmissionSuite) TestAutoApprovedSubmission() {
	result := s.submission.Submit(s.ctx, s.validRequest())

	success, ok := result.(Success)
	s.Require().True(ok, "expected Success, got %T", result)
	s.True(success.AutoApproved)
	s.True(success.HirerDriverRecordCreated)
	s.True(success.SuspensionApplied)

	s.Require().NotNil(success.Application)
	s.Equal(model.FurnishStatusApproved, success.Application.Status)
	s.Empty(success.Application.ReasonForReview)
	s.NotEmpty(success.Application.TxnNo)

	// Furnished party became the current offender with a furnished mail address.
	s.Require().Len(s.ownerDriverRepo.records, 1)
	s.Equal(model.OffenderCurrent, s.ownerDriverRepo.records[0].OffenderIndicator)
	s.Equal("S1234567D", s.ownerDriverRepo.records[0].IDNo)
	s.Require().Len(s.ownerDriverRepo.addrs, 1)
	s.Equal(model.AddrTypeFurnishedMail, s.ownerDriverRepo.addrs[0].TypeOfAddress)

	// TS-PDP suspension with the 21-day revival window.
	s.Require().Len(s.suspensionRepo.suspensions, 1)
	susp := s.suspensionRepo.suspensions[0]
	s.Equal(model.SuspensionTypeTemporary, susp.SuspensionType)
	s.Equal(model.SuspensionReasonPDP, susp.ReasonOfSuspension)
	s.Equal(model.SuspensionSourceFurnish, susp.SuspensionSource)
	s.Equal(susp.DateOfSuspension.AddDate(0, 0, model.TsPdpWindowDays), susp.DueDateOfRevival)

	s.Contains(s.auditRepo.steps(), model.AuditSubmissionReceived)
	s.Contains(s.auditRepo.steps(), model.AuditSubmissionCompleted)
}

func (s *FurnishSubmissionSuite) TestManualReviewSubmission() {
	s.blacklistRepo.ids["S1234567D"] = true

	result := s.submission.Submit(s.ctx, s.validRequest())

	bizErr, ok := result.(BusinessError)
	s.Require().True(ok, "expected BusinessError, got %T", result)
	s.Equal(ReasonAutoApprovalFailed, bizErr.CheckType)
	s.True(bizErr.RequiresManualReview)

	// Application is persisted pending with the failure reasons for the officer.
	s.Require().NotNil(bizErr.Application)
	s.Equal(model.FurnishStatusPending, bizErr.Application.Status)
	s.Contains(bizErr.Application.ReasonForReview, "exclusion list")

	// No offender transfer before officer review, but the clock is held.
	s.Empty(s.ownerDriverRepo.records)
	s.Len(s.suspensionRepo.suspensions, 1)
	s.Contains(s.auditRepo.steps(), model.AuditManualReviewRequired)
}

func (s *FurnishSubmissionSuite) TestValidationFailureWritesNothing() {
	req := s.validRequest()
	req.NoticeNo = "N999999"

	result := s.submission.Submit(s.ctx, req)

	valErr, ok := result.(ValidationError)
	s.Require().True(ok, "expected ValidationError, got %T", result)
	s.Equal("notice_no", valErr.Field)

	s.Empty(s.applicationRepo.apps)
	s.Empty(s.ownerDriverRepo.records)
	s.Empty(s.suspensionRepo.suspensions)
}

func (s *FurnishSubmissionSuite) TestDocumentReferencesPersisted() {
	req := s.validRequest()
	req.DocumentReferences = []string{"rental-agreement.pdf", "staff-pass.jpg"}

	result := s.submission.Submit(s.ctx, req)
	success, ok := result.(Success)
	s.Require().True(ok, "expected Success, got %T", result)

	docs, err := s.docRepo.FindByTxnNo(s.ctx, success.Application.TxnNo)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal(1, docs[0].AttachmentID)
	s.Equal(2, docs[1].AttachmentID)
	s.Contains(s.auditRepo.steps(), model.AuditDocumentsAttached)
}

func (s *FurnishSubmissionSuite) TestSuspensionIsIdempotent() {
	first := s.submission.Submit(s.ctx, s.validRequest())
	s.Require().IsType(Success{}, first)
	s.Require().Len(s.suspensionRepo.suspensions, 1)

	// Second furnish on the same notice: the hirer slot is still open so it
	// queues for review, but no second suspension row appears.
	req := s.validRequest()
	req.FurnishIDNo = "F1234567N"
	req.FurnishIDType = model.IDTypeFIN
	second := s.submission.Submit(s.ctx, req)
	s.Require().IsType(BusinessError{}, second)

	s.Len(s.suspensionRepo.suspensions, 1)
}

func (s *FurnishSubmissionSuite) TestResubmissionIsFlaggedNotRejected() {
	first := s.submission.Submit(s.ctx, s.validRequest())
	s.Require().IsType(Success{}, first)

	// A later hirer furnish on the same notice is a resubmission scenario;
	// it proceeds through the pipeline rather than being refused outright.
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	req := s.validRequest()
	req.FurnishIDNo = "F1234567N"
	req.FurnishIDType = model.IDTypeFIN
	req.OwnerDriverIndicator = model.IndicatorHirer
	req.RentalPeriodFrom = &from
	req.RentalPeriodTo = &to

	result := s.submission.Submit(s.ctx, req)
	s.Require().IsType(Success{}, result)
	s.Len(s.applicationRepo.apps, 2)
}

func (s *FurnishSubmissionSuite) TestPersistenceFailureBecomesTechnicalError() {
	s.applicationRepo.createErr = errors.New("disk full")

	result := s.submission.Submit(s.ctx, s.validRequest())

	techErr, ok := result.(TechnicalError)
	s.Require().True(ok, "expected TechnicalError, got %T", result)
	s.Equal("furnish submission", techErr.Operation)
	s.Equal("N200001", techErr.Details["notice_no"])
	s.Contains(s.auditRepo.steps(), model.AuditTechnicalError)
}
