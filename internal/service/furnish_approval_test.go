package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ocms/internal/model"
)

type FurnishApprovalSuite struct {
	suite.Suite
	ctx context.Context

	noticeRepo       *fakeNoticeRepo
	applicationRepo  *fakeApplicationRepo
	ownerDriverRepo  *fakeOwnerDriverRepo
	docRepo          *fakeDocRepo
	suspensionRepo   *fakeSuspensionRepo
	auditRepo        *fakeAuditRepo
	notificationRepo *fakeNotificationRepo
	emailSender      *fakeEmailSender
	smsSender        *fakeSmsSender

	approval *FurnishApprovalService
}

func (s *FurnishApprovalSuite) SetupTest() {
	s.ctx = context.Background()
	s.noticeRepo = newFakeNoticeRepo()
	s.applicationRepo = newFakeApplicationRepo()
	s.ownerDriverRepo = &fakeOwnerDriverRepo{}
	s.docRepo = &fakeDocRepo{}
	s.suspensionRepo = &fakeSuspensionRepo{}
	s.auditRepo = &fakeAuditRepo{}
	s.notificationRepo = &fakeNotificationRepo{}
	s.emailSender = &fakeEmailSender{}
	s.smsSender = &fakeSmsSender{}

	persistence := NewFurnishPersistenceService(s.applicationRepo, s.docRepo, s.ownerDriverRepo, s.suspensionRepo)
	dashboard := NewFurnishDashboardService(s.applicationRepo, s.docRepo, s.noticeRepo)
	notification := NewFurnishNotificationService(s.emailSender, s.smsSender, s.notificationRepo)
	audit := NewFurnishAuditService(s.auditRepo, noopBroadcaster{})
	s.approval = NewFurnishApprovalService(s.applicationRepo, persistence, dashboard, notification, audit, passthroughTxManager{})

	s.noticeRepo.add(model.OffenceNotice{
		NoticeNo:               "N400001",
		VehicleNo:              "SMT3456D",
		OffenceDate:            time.Date(2026, 7, 1, 11, 0, 0, 0, time.UTC),
		CurrentProcessingStage: model.StageDemandNote1,
	})

	// The incumbent offender on the notice, to be superseded on approval.
	s.ownerDriverRepo.records = []model.OwnerDriver{{
		NoticeNo:             "N400001",
		OwnerDriverIndicator: "O",
		IDNo:                 "S7654321F",
		Name:                 "Registered Owner",
		OffenderIndicator:    model.OffenderCurrent,
	}}

	// Pending application queued for officer review, with the active TS-PDP hold.
	s.applicationRepo.apps["FURN-20260702-BBBB2222"] = model.FurnishApplication{
		TxnNo:                "FURN-20260702-BBBB2222",
		NoticeNo:             "N400001",
		VehicleNo:            "SMT3456D",
		Status:               model.FurnishStatusPending,
		FurnishName:          "Ong Wei Jie",
		FurnishIDType:        model.IDTypeNRIC,
		FurnishIDNo:          "S1234567D",
		FurnishEmailAddr:     "weijie@example.com",
		FurnishTelCode:       "65",
		FurnishTelNo:         "91234567",
		OwnerDriverIndicator: model.IndicatorDriver,
		OwnerName:            "Registered Owner",
		OwnerEmailAddr:       "owner@example.com",
		CreatedAt:            time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC),
	}
	s.suspensionRepo.suspensions = []model.SuspendedNotice{{
		NoticeNo:           "N400001",
		SrNo:               1,
		SuspensionType:     model.SuspensionTypeTemporary,
		ReasonOfSuspension: model.SuspensionReasonPDP,
		SuspensionSource:   model.SuspensionSourceFurnish,
	}}
}

func TestFurnishApprovalSuite(t *testing.T) {
	suite.Run(t, new(FurnishApprovalSuite))
}

func (s *FurnishApprovalSuite) TestApprovePendingApplication() {
	result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", &FurnishApprovalRequest{})

	success, ok := result.(Success)
	s.Require().True(ok, "expected Success, got %T", result)
	s.True(success.HirerDriverRecordCreated)
	s.True(success.SuspensionRevived)
	s.Equal(model.FurnishStatusApproved, success.Application.Status)
	s.Contains(success.Application.Remarks, "Approved by officer.lee")

	// Ownership of the offence transferred to the furnished driver.
	s.Require().Len(s.ownerDriverRepo.records, 2)
	s.Equal(model.OffenderSuperseded, s.ownerDriverRepo.records[0].OffenderIndicator)
	s.Equal("S1234567D", s.ownerDriverRepo.records[1].IDNo)
	s.Equal(model.OffenderCurrent, s.ownerDriverRepo.records[1].OffenderIndicator)

	// Suspension revived and attributed to the officer.
	susp := s.suspensionRepo.suspensions[0]
	s.Require().NotNil(susp.DateOfRevival)
	s.Equal(model.RevivalReasonApproved, susp.RevivalReason)
	s.Equal("officer.lee", susp.OfficerAuthorisingRevival)

	s.Contains(s.auditRepo.steps(), model.AuditSuspensionRevived)
	s.Contains(s.auditRepo.steps(), model.AuditApprovalCompleted)
}

func (s *FurnishApprovalSuite) TestApprovalNotifications() {
	req := &FurnishApprovalRequest{
		EmailOwner:     true,
		EmailFurnished: true,
		SmsFurnished:   true,
	}

	result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", req)

	success, ok := result.(Success)
	s.Require().True(ok, "expected Success, got %T", result)
	s.True(success.EmailSentToOwner)
	s.True(success.EmailSentToFurnished)
	s.True(success.SmsSentToFurnished)

	s.Len(s.emailSender.sent, 2)
	s.Equal([]string{"6591234567"}, s.smsSender.sent)
	s.Len(s.notificationRepo.emails, 2)
	s.Len(s.notificationRepo.sms, 1)
}

func (s *FurnishApprovalSuite) TestNotificationFailureDoesNotUndoApproval() {
	s.emailSender.err = context.DeadlineExceeded

	result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee",
		&FurnishApprovalRequest{EmailOwner: true})

	success, ok := result.(Success)
	s.Require().True(ok, "expected Success, got %T", result)
	s.False(success.EmailSentToOwner)
	s.Equal(model.FurnishStatusApproved, s.applicationRepo.apps["FURN-20260702-BBBB2222"].Status)

	// Failed attempt is still recorded.
	s.Require().Len(s.notificationRepo.emails, 1)
	s.Equal(model.NotificationFailed, s.notificationRepo.emails[0].Status)
}

func (s *FurnishApprovalSuite) TestGuards() {
	s.Run("unknown txn number", func() {
		result := s.approval.Approve(s.ctx, "FURN-NOPE", "officer.lee", &FurnishApprovalRequest{})
		s.Require().IsType(ValidationError{}, result)
	})

	s.Run("lookup failure is technical, not validation", func() {
		s.applicationRepo.findErr = errors.New("connection reset by peer")
		defer func() { s.applicationRepo.findErr = nil }()

		result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", &FurnishApprovalRequest{})
		techErr, ok := result.(TechnicalError)
		s.Require().True(ok, "expected TechnicalError, got %T", result)
		s.Equal("furnish approval", techErr.Operation)
	})

	s.Run("already approved", func() {
		app := s.applicationRepo.apps["FURN-20260702-BBBB2222"]
		app.Status = model.FurnishStatusApproved
		s.applicationRepo.apps["FURN-20260702-BBBB2222"] = app

		result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", &FurnishApprovalRequest{})
		bizErr, ok := result.(BusinessError)
		s.Require().True(ok, "expected BusinessError, got %T", result)
		s.Equal(ReasonAlreadyApproved, bizErr.CheckType)
	})

	s.Run("already rejected", func() {
		app := s.applicationRepo.apps["FURN-20260702-BBBB2222"]
		app.Status = model.FurnishStatusRejected
		s.applicationRepo.apps["FURN-20260702-BBBB2222"] = app

		result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", &FurnishApprovalRequest{})
		bizErr, ok := result.(BusinessError)
		s.Require().True(ok, "expected BusinessError, got %T", result)
		s.Equal(ReasonAlreadyRejected, bizErr.CheckType)
	})

	s.Run("permanently suspended notice", func() {
		app := s.applicationRepo.apps["FURN-20260702-BBBB2222"]
		app.Status = model.FurnishStatusPending
		s.applicationRepo.apps["FURN-20260702-BBBB2222"] = app
		s.suspensionRepo.suspensions = append(s.suspensionRepo.suspensions, model.SuspendedNotice{
			NoticeNo:       "N400001",
			SrNo:           2,
			SuspensionType: model.SuspensionTypePermanent,
		})

		result := s.approval.Approve(s.ctx, "FURN-20260702-BBBB2222", "officer.lee", &FurnishApprovalRequest{})
		bizErr, ok := result.(BusinessError)
		s.Require().True(ok, "expected BusinessError, got %T", result)
		s.Equal(ReasonPermanentSuspension, bizErr.CheckType)
		s.Equal(model.FurnishStatusPending, s.applicationRepo.apps["FURN-20260702-BBBB2222"].Status)
	})
}
