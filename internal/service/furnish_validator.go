package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"ocms/internal/model"
	"ocms/internal/repository"
)

// RuleViolation is a basic business-rule failure. It maps to the
// ValidationError result variant; infrastructure failures are returned as
// ordinary errors and become TechnicalError at the pipeline top level.
type RuleViolation struct {
	Field   string
	Message string
}

func (v *RuleViolation) Error() string {
	return v.Message
}

var (
	uenPattern      = regexp.MustCompile(`^[0-9]{8,9}[A-Z]$|^[TS][0-9]{2}[A-Z]{2}[0-9]{4}[A-Z]$`)
	passportPattern = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)
)

// FurnishValidator evaluates basic business rules and the five auto-approval
// checks against a furnish context. It is stateless and performs no writes.
type FurnishValidator struct {
	noticeRepo      repository.NoticeRepository
	ownerDriverRepo repository.OwnerDriverRepository
	applicationRepo repository.FurnishApplicationRepository
	blacklistRepo   repository.BlacklistRepository
}

func NewFurnishValidator(
	noticeRepo repository.NoticeRepository,
	ownerDriverRepo repository.OwnerDriverRepository,
	applicationRepo repository.FurnishApplicationRepository,
	blacklistRepo repository.BlacklistRepository,
) *FurnishValidator {
	return &FurnishValidator{
		noticeRepo:      noticeRepo,
		ownerDriverRepo: ownerDriverRepo,
		applicationRepo: applicationRepo,
		blacklistRepo:   blacklistRepo,
	}
}

// ValidateBasicBusinessRules confirms the referenced notice exists and the
// payload is internally consistent. The first violated precondition is
// returned as a *RuleViolation; the notice and owner/driver snapshots are
// loaded into the context for later checks.
func (v *FurnishValidator) ValidateBasicBusinessRules(ctx context.Context, fc *FurnishContext) error {
	req := fc.Request

	notice, err := v.noticeRepo.FindByNoticeNo(ctx, req.NoticeNo)
	if err != nil {
		return &RuleViolation{Field: "notice_no", Message: "Notice number not found: " + req.NoticeNo}
	}
	fc.Notice = notice

	if !model.FurnishableStage(notice.CurrentProcessingStage) {
		return &RuleViolation{Field: "notice_no",
			Message: "Notice is not at a furnishable processing stage: " + notice.CurrentProcessingStage}
	}

	if !strings.EqualFold(notice.VehicleNo, req.VehicleNo) {
		return &RuleViolation{Field: "vehicle_no", Message: "Vehicle number mismatch for notice: " + req.NoticeNo}
	}

	if req.OwnerDriverIndicator != model.IndicatorHirer && req.OwnerDriverIndicator != model.IndicatorDriver {
		return &RuleViolation{Field: "owner_driver_indicator", Message: "Invalid owner/driver indicator. Must be 'H' or 'D'"}
	}

	switch req.FurnishIDType {
	case model.IDTypeNRIC, model.IDTypeFIN, model.IDTypeUEN, model.IDTypePassport:
	default:
		return &RuleViolation{Field: "furnish_id_type", Message: "Invalid furnish ID type: " + req.FurnishIDType}
	}

	if strings.TrimSpace(req.FurnishName) == "" {
		return &RuleViolation{Field: "furnish_name", Message: "Furnished person name is required"}
	}
	if strings.TrimSpace(req.FurnishIDNo) == "" {
		return &RuleViolation{Field: "furnish_id_no", Message: "Furnished person ID number is required"}
	}

	records, err := v.ownerDriverRepo.FindByNoticeNo(ctx, req.NoticeNo)
	if err != nil {
		return fmt.Errorf("failed to load owner/driver records: %w", err)
	}
	fc.ExistingOwnerDrivers = records

	return nil
}

// PerformAutoApprovalChecks evaluates all five checks regardless of earlier
// failures so the officer sees every reason at once. Check outcomes mutate
// the context; the returned error is reserved for infrastructure failures.
func (v *FurnishValidator) PerformAutoApprovalChecks(ctx context.Context, fc *FurnishContext) error {
	v.checkIdentityFormat(fc)
	v.checkConflictingFurnish(fc)
	v.checkRentalPeriod(fc)
	if err := v.checkSingleHirerPerPeriod(ctx, fc); err != nil {
		return err
	}
	if err := v.checkBlacklist(ctx, fc); err != nil {
		return err
	}

	fc.AutoApprovalPassed = !fc.HasFailures()
	if fc.AutoApprovalPassed {
		log.Printf("Auto-approval checks PASSED for notice %s", fc.Request.NoticeNo)
	} else {
		log.Printf("Auto-approval checks FAILED for notice %s: %s", fc.Request.NoticeNo, fc.FailureSummary())
	}
	return nil
}

// Check 1: furnished ID matches the format of the declared ID type.
func (v *FurnishValidator) checkIdentityFormat(fc *FurnishContext) {
	req := fc.Request
	idNo := strings.ToUpper(strings.TrimSpace(req.FurnishIDNo))

	valid := false
	switch req.FurnishIDType {
	case model.IDTypeNRIC:
		valid = validNRIC(idNo)
	case model.IDTypeFIN:
		valid = validFIN(idNo)
	case model.IDTypeUEN:
		valid = uenPattern.MatchString(idNo)
	case model.IDTypePassport:
		valid = passportPattern.MatchString(idNo)
	}

	if !valid {
		fc.AddFailure(CheckIdentityFormat,
			fmt.Sprintf("Furnished ID %s is not a valid %s", req.FurnishIDNo, req.FurnishIDType))
	}
}

// Check 2: furnished ID must not already be on the notice's owner/driver
// records, and no record may already exist for the declared role.
func (v *FurnishValidator) checkConflictingFurnish(fc *FurnishContext) {
	req := fc.Request

	for _, record := range fc.ExistingOwnerDrivers {
		if record.IDNo == req.FurnishIDNo {
			fc.AddFailure(CheckConflictingFurnish,
				"Furnished ID already exists in hirer/driver details for this notice")
			return
		}
	}
	for _, record := range fc.ExistingOwnerDrivers {
		if record.OwnerDriverIndicator == req.OwnerDriverIndicator {
			role := "Driver"
			if req.OwnerDriverIndicator == model.IndicatorHirer {
				role = "Hirer"
			}
			fc.AddFailure(CheckConflictingFurnish,
				role+" particulars already present for this notice")
			return
		}
	}
}

// Check 3: hirer furnishing must declare a rental period covering the offence.
func (v *FurnishValidator) checkRentalPeriod(fc *FurnishContext) {
	req := fc.Request
	if req.OwnerDriverIndicator != model.IndicatorHirer {
		return
	}

	if req.RentalPeriodFrom == nil || req.RentalPeriodTo == nil {
		fc.AddFailure(CheckRentalPeriod, "Rental period is required when furnishing a hirer")
		return
	}
	if req.RentalPeriodTo.Before(*req.RentalPeriodFrom) {
		fc.AddFailure(CheckRentalPeriod, "Rental period end precedes its start")
		return
	}
	if fc.Notice == nil {
		return
	}
	offence := fc.Notice.OffenceDate
	if offence.Before(*req.RentalPeriodFrom) || offence.After(*req.RentalPeriodTo) {
		fc.AddFailure(CheckRentalPeriod, "Offence date is not within the declared rental period")
	}
}

// Check 4: at most one hirer per rental period. An existing pending or
// approved hirer application with an overlapping period fails the check.
func (v *FurnishValidator) checkSingleHirerPerPeriod(ctx context.Context, fc *FurnishContext) error {
	req := fc.Request
	if req.OwnerDriverIndicator != model.IndicatorHirer {
		return nil
	}

	existing, err := v.applicationRepo.FindByNoticeNo(ctx, req.NoticeNo)
	if err != nil {
		return fmt.Errorf("failed to load furnish applications: %w", err)
	}

	for _, app := range existing {
		if app.OwnerDriverIndicator != model.IndicatorHirer {
			continue
		}
		if app.Status != model.FurnishStatusPending && app.Status != model.FurnishStatusApproved {
			continue
		}
		if rentalPeriodsOverlap(req.RentalPeriodFrom, req.RentalPeriodTo, app.RentalPeriodFrom, app.RentalPeriodTo) {
			fc.AddFailure(CheckSingleHirerPerPeriod,
				"An existing hirer is already identified for this rental period")
			return nil
		}
	}
	return nil
}

// Check 5: furnished ID must not be on the exclusion list.
func (v *FurnishValidator) checkBlacklist(ctx context.Context, fc *FurnishContext) error {
	blacklisted, err := v.blacklistRepo.Exists(ctx, fc.Request.FurnishIDNo)
	if err != nil {
		return fmt.Errorf("failed to check exclusion list: %w", err)
	}
	if blacklisted {
		fc.AddFailure(CheckBlacklist, "Furnished ID is on the exclusion list")
	}
	return nil
}

// rentalPeriodsOverlap treats a missing period on either side as overlapping,
// since an open-ended hirer claim cannot be disambiguated automatically.
func rentalPeriodsOverlap(aFrom, aTo, bFrom, bTo *time.Time) bool {
	if aFrom == nil || aTo == nil || bFrom == nil || bTo == nil {
		return true
	}
	return !aTo.Before(*bFrom) && !bTo.Before(*aFrom)
}

var (
	nricCheckLetters = "JZIHGFEDCBA"
	finCheckLetters  = "XWUTRQPNMLK"
	idWeights        = []int{2, 7, 6, 5, 4, 3, 2}
)

func idChecksum(id string) (int, bool) {
	sum := 0
	for i := 0; i < 7; i++ {
		d := id[i+1]
		if d < '0' || d > '9' {
			return 0, false
		}
		sum += int(d-'0') * idWeights[i]
	}
	if id[0] == 'T' || id[0] == 'G' {
		sum += 4
	}
	return sum % 11, true
}

// validNRIC checks the structure and check digit of a Singapore NRIC
// (S/T prefix, seven digits, check letter).
func validNRIC(id string) bool {
	if len(id) != 9 || (id[0] != 'S' && id[0] != 'T') {
		return false
	}
	r, ok := idChecksum(id)
	return ok && nricCheckLetters[r] == id[8]
}

// validFIN checks the structure and check digit of a foreign identification
// number (F/G prefix, seven digits, check letter).
func validFIN(id string) bool {
	if len(id) != 9 || (id[0] != 'F' && id[0] != 'G') {
		return false
	}
	r, ok := idChecksum(id)
	return ok && finCheckLetters[r] == id[8]
}
