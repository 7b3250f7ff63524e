package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ocms/internal/model"
	"ocms/internal/repository"

	"github.com/google/uuid"
)

// NewTxnNo generates a unique furnish transaction number,
// e.g. FURN-20260115-1A2B3C4D.
func NewTxnNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("FURN-%s-%s", now.Format("20060102"), suffix)
}

// FurnishPersistenceService is the only component that mutates durable state
// for the furnish workflow. Orchestrators call it inside a single transaction
// via repository.TransactionManager.
type FurnishPersistenceService struct {
	applicationRepo repository.FurnishApplicationRepository
	docRepo         repository.FurnishDocRepository
	ownerDriverRepo repository.OwnerDriverRepository
	suspensionRepo  repository.SuspensionRepository

	now func() time.Time
}

func NewFurnishPersistenceService(
	applicationRepo repository.FurnishApplicationRepository,
	docRepo repository.FurnishDocRepository,
	ownerDriverRepo repository.OwnerDriverRepository,
	suspensionRepo repository.SuspensionRepository,
) *FurnishPersistenceService {
	return &FurnishPersistenceService{
		applicationRepo: applicationRepo,
		docRepo:         docRepo,
		ownerDriverRepo: ownerDriverRepo,
		suspensionRepo:  suspensionRepo,
		now:             time.Now,
	}
}

// IsResubmission reports whether a furnish application already exists for the
// notice. Resubmission is a legitimate scenario and is flagged for
// information only, never rejected.
func (s *FurnishPersistenceService) IsResubmission(ctx context.Context, noticeNo string) (bool, error) {
	existing, err := s.applicationRepo.FindByNoticeNo(ctx, noticeNo)
	if err != nil {
		return false, fmt.Errorf("failed to look up prior applications: %w", err)
	}
	return len(existing) > 0, nil
}

// CreateFurnishApplication persists the durable record of this submission
// attempt. Status is A when auto-approval passed, P otherwise.
func (s *FurnishPersistenceService) CreateFurnishApplication(ctx context.Context, fc *FurnishContext) (*model.FurnishApplication, error) {
	req := fc.Request

	txnNo := req.TxnNo
	if txnNo == "" {
		txnNo = NewTxnNo(s.now())
	}

	status := model.FurnishStatusPending
	if fc.AutoApprovalPassed {
		status = model.FurnishStatusApproved
	}

	app := &model.FurnishApplication{
		TxnNo:       txnNo,
		NoticeNo:    req.NoticeNo,
		VehicleNo:   req.VehicleNo,
		OffenceDate: fc.Notice.OffenceDate,
		PpCode:      fc.Notice.PpCode,
		PpName:      fc.Notice.PpName,

		FurnishName:   req.FurnishName,
		FurnishIDType: req.FurnishIDType,
		FurnishIDNo:   req.FurnishIDNo,

		FurnishMailBlkNo:      req.FurnishMailBlkNo,
		FurnishMailFloor:      req.FurnishMailFloor,
		FurnishMailStreetName: req.FurnishMailStreetName,
		FurnishMailUnitNo:     req.FurnishMailUnitNo,
		FurnishMailBldgName:   req.FurnishMailBldgName,
		FurnishMailPostalCode: req.FurnishMailPostalCode,

		FurnishTelCode:   req.FurnishTelCode,
		FurnishTelNo:     req.FurnishTelNo,
		FurnishEmailAddr: req.FurnishEmailAddr,

		OwnerDriverIndicator:   req.OwnerDriverIndicator,
		HirerOwnerRelationship: req.HirerOwnerRelationship,
		OthersRelationshipDesc: req.OthersRelationshipDesc,
		QuesOneAns:             req.QuesOneAns,
		QuesTwoAns:             req.QuesTwoAns,
		QuesThreeAns:           req.QuesThreeAns,

		RentalPeriodFrom: req.RentalPeriodFrom,
		RentalPeriodTo:   req.RentalPeriodTo,

		OwnerName:         req.OwnerName,
		OwnerIDNo:         req.OwnerIDNo,
		OwnerTelCode:      req.OwnerTelCode,
		OwnerTelNo:        req.OwnerTelNo,
		OwnerEmailAddr:    req.OwnerEmailAddr,
		CorppassStaffName: req.CorppassStaffName,

		Status:    status,
		CreatedAt: s.now(),
	}

	if !fc.AutoApprovalPassed && fc.HasFailures() {
		app.ReasonForReview = fc.FailureSummary()
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create furnish application: %w", err)
	}
	log.Printf("Created furnish application %s, status %s", app.TxnNo, app.Status)

	return app, nil
}

// CreateApplicationDocuments links uploaded attachments to the application.
func (s *FurnishPersistenceService) CreateApplicationDocuments(ctx context.Context, txnNo string, documentReferences []string) error {
	if len(documentReferences) == 0 {
		return nil
	}

	docs := make([]model.FurnishApplicationDoc, 0, len(documentReferences))
	for i, ref := range documentReferences {
		docs = append(docs, model.FurnishApplicationDoc{
			TxnNo:        txnNo,
			AttachmentID: i + 1,
			DocName:      ref,
		})
	}

	if err := s.docRepo.CreateAll(ctx, docs); err != nil {
		return fmt.Errorf("failed to create document records: %w", err)
	}
	log.Printf("Created %d document records for txn %s", len(docs), txnNo)
	return nil
}

// CreateHirerDriverRecord makes the furnished person the current offender:
// existing offender rows are demoted, the (notice, indicator) row is
// upserted with OffenderIndicator=Y and the furnished_mail address is
// written from the application's declared mailing address. Only the
// auto-approved and officer-approved paths call this.
func (s *FurnishPersistenceService) CreateHirerDriverRecord(ctx context.Context, fc *FurnishContext) (*model.OwnerDriver, error) {
	req := fc.Request

	existing, err := s.ownerDriverRepo.FindByNoticeNo(ctx, req.NoticeNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner/driver records: %w", err)
	}
	for i := range existing {
		if existing[i].OffenderIndicator == model.OffenderCurrent {
			existing[i].OffenderIndicator = model.OffenderSuperseded
			if err := s.ownerDriverRepo.Save(ctx, &existing[i]); err != nil {
				return nil, fmt.Errorf("failed to demote current offender: %w", err)
			}
		}
	}

	record := &model.OwnerDriver{
		NoticeNo:             req.NoticeNo,
		OwnerDriverIndicator: req.OwnerDriverIndicator,
		IDNo:                 req.FurnishIDNo,
		IDType:               req.FurnishIDType,
		Name:                 req.FurnishName,
		OffenderIndicator:    model.OffenderCurrent,
		TelCode:              req.FurnishTelCode,
		TelNo:                req.FurnishTelNo,
		EmailAddr:            req.FurnishEmailAddr,
	}
	if err := s.ownerDriverRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert owner/driver record: %w", err)
	}

	addr := &model.OwnerDriverAddr{
		NoticeNo:             req.NoticeNo,
		OwnerDriverIndicator: req.OwnerDriverIndicator,
		TypeOfAddress:        model.AddrTypeFurnishedMail,
		BlkHseNo:             req.FurnishMailBlkNo,
		FloorNo:              req.FurnishMailFloor,
		StreetName:           req.FurnishMailStreetName,
		UnitNo:               req.FurnishMailUnitNo,
		BldgName:             req.FurnishMailBldgName,
		PostalCode:           req.FurnishMailPostalCode,
	}
	if err := s.ownerDriverRepo.UpsertAddr(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to write furnished mail address: %w", err)
	}

	log.Printf("Created hirer/driver record for notice %s, ID %s", req.NoticeNo, req.FurnishIDNo)
	return record, nil
}

// ApplyTsPdpSuspension idempotently ensures an active TS-PDP suspension with
// a 21-day window exists for the notice. Both the auto-approved and
// manual-review paths hold the processing clock.
func (s *FurnishPersistenceService) ApplyTsPdpSuspension(ctx context.Context, noticeNo string) error {
	suspensions, err := s.suspensionRepo.FindByNoticeNo(ctx, noticeNo)
	if err != nil {
		return fmt.Errorf("failed to load suspensions: %w", err)
	}
	for i := range suspensions {
		if suspensions[i].IsActiveTsPdp() {
			log.Printf("Active TS-PDP suspension already present for notice %s", noticeNo)
			return nil
		}
	}

	maxSrNo, err := s.suspensionRepo.MaxSrNo(ctx, noticeNo)
	if err != nil {
		return fmt.Errorf("failed to compute next suspension sr_no: %w", err)
	}

	now := s.now()
	suspension := &model.SuspendedNotice{
		NoticeNo:           noticeNo,
		SrNo:               maxSrNo + 1,
		DateOfSuspension:   now,
		SuspensionSource:   model.SuspensionSourceFurnish,
		SuspensionType:     model.SuspensionTypeTemporary,
		ReasonOfSuspension: model.SuspensionReasonPDP,
		OfficerAuthorising: "SYSTEM",
		DueDateOfRevival:   now.AddDate(0, 0, model.TsPdpWindowDays),
		SuspensionRemarks:  "Auto-suspended due to furnish submission",
	}
	if err := s.suspensionRepo.Create(ctx, suspension); err != nil {
		return fmt.Errorf("failed to apply TS-PDP suspension: %w", err)
	}

	log.Printf("Applied TS-PDP suspension for notice %s (sr_no %d)", noticeNo, suspension.SrNo)
	return nil
}

// ReviveTsPdpSuspension closes every active TS-PDP hold on the notice.
// Only the approval outcome revives; rejection deliberately leaves the notice
// suspended so the owner can resubmit without racing the processing clock.
func (s *FurnishPersistenceService) ReviveTsPdpSuspension(ctx context.Context, noticeNo, officerID string) error {
	suspensions, err := s.suspensionRepo.FindByNoticeNo(ctx, noticeNo)
	if err != nil {
		return fmt.Errorf("failed to load suspensions: %w", err)
	}

	for i := range suspensions {
		if !suspensions[i].IsActiveTsPdp() {
			continue
		}
		now := s.now()
		suspensions[i].DateOfRevival = &now
		suspensions[i].RevivalReason = model.RevivalReasonApproved
		suspensions[i].OfficerAuthorisingRevival = officerID
		suspensions[i].RevivalRemarks = "Furnish application approved"
		if err := s.suspensionRepo.Update(ctx, &suspensions[i]); err != nil {
			return fmt.Errorf("failed to revive suspension: %w", err)
		}
		log.Printf("Revived TS-PDP suspension for notice %s (sr_no %d)", noticeNo, suspensions[i].SrNo)
	}
	return nil
}

// HasActivePermanentSuspension reports an open PS hold on the notice.
func (s *FurnishPersistenceService) HasActivePermanentSuspension(ctx context.Context, noticeNo string) (bool, error) {
	suspensions, err := s.suspensionRepo.FindByNoticeNo(ctx, noticeNo)
	if err != nil {
		return false, fmt.Errorf("failed to load suspensions: %w", err)
	}
	for i := range suspensions {
		if suspensions[i].SuspensionType == model.SuspensionTypePermanent && suspensions[i].DateOfRevival == nil {
			return true, nil
		}
	}
	return false, nil
}
