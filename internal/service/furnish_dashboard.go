package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ocms/internal/model"
	"ocms/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrApplicationNotFound is returned by GetApplicationDetail for an unknown
// txn number. Handlers map it to a NOT_FOUND response.
var ErrApplicationNotFound = errors.New("furnish application not found")

// FurnishApplicationListRequest carries the officer dashboard filters.
type FurnishApplicationListRequest struct {
	Statuses           []string   `json:"statuses"`
	NoticeNo           string     `json:"notice_no"`
	VehicleNo          string     `json:"vehicle_no"`
	FurnishIDNo        string     `json:"furnish_id_no"`
	SubmissionDateFrom *time.Time `json:"submission_date_from"`
	SubmissionDateTo   *time.Time `json:"submission_date_to"`
	SortBy             string     `json:"sort_by"`        // noticeNo, vehicleNo, status, submissionDate
	SortDirection      string     `json:"sort_direction"` // ASC or DESC
	Page               int        `json:"page"`
	PageSize           int        `json:"page_size"`
}

// FurnishApplicationSummary is one dashboard list row.
type FurnishApplicationSummary struct {
	TxnNo                  string    `json:"txn_no"`
	NoticeNo               string    `json:"notice_no"`
	VehicleNo              string    `json:"vehicle_no"`
	OffenceDate            time.Time `json:"offence_date"`
	PpCode                 string    `json:"pp_code"`
	PpName                 string    `json:"pp_name"`
	CurrentProcessingStage string    `json:"current_processing_stage"`
	Status                 string    `json:"status"`
	SubmissionDate         time.Time `json:"submission_date"`
	WorkingDaysPending     int       `json:"working_days_pending"`
	FurnishName            string    `json:"furnish_name"`
	FurnishIDNo            string    `json:"furnish_id_no"`
	OwnerDriverIndicator   string    `json:"owner_driver_indicator"`
}

// FurnishApplicationListResponse is the paginated dashboard listing.
type FurnishApplicationListResponse struct {
	Applications []FurnishApplicationSummary `json:"applications"`
	TotalRecords int64                       `json:"total_records"`
	CurrentPage  int                         `json:"current_page"`
	TotalPages   int                         `json:"total_pages"`
}

// DocumentInfo describes one attachment on the detail view.
type DocumentInfo struct {
	TxnNo        string `json:"txn_no"`
	AttachmentID int    `json:"attachment_id"`
	DocName      string `json:"doc_name"`
}

// FurnishApplicationDetail is the full officer-facing application view with
// derived fields resolved.
type FurnishApplicationDetail struct {
	model.FurnishApplication

	CurrentProcessingStage string          `json:"current_processing_stage"`
	CompositionAmount      decimal.Decimal `json:"composition_amount"`
	WorkingDaysPending     int             `json:"working_days_pending"`
	Documents              []DocumentInfo  `json:"documents"`
}

// FurnishDashboardService is the read-only projection layer officers use to
// list and inspect applications.
type FurnishDashboardService struct {
	applicationRepo repository.FurnishApplicationRepository
	docRepo         repository.FurnishDocRepository
	noticeRepo      repository.NoticeRepository

	now func() time.Time
}

func NewFurnishDashboardService(
	applicationRepo repository.FurnishApplicationRepository,
	docRepo repository.FurnishDocRepository,
	noticeRepo repository.NoticeRepository,
) *FurnishDashboardService {
	return &FurnishDashboardService{
		applicationRepo: applicationRepo,
		docRepo:         docRepo,
		noticeRepo:      noticeRepo,
		now:             time.Now,
	}
}

// ListFurnishApplications loads candidates by status set, applies predicate
// filters, sorts with a submission-date fallback and paginates.
func (s *FurnishDashboardService) ListFurnishApplications(ctx context.Context, req FurnishApplicationListRequest) (*FurnishApplicationListResponse, error) {
	var all []model.FurnishApplication
	var err error
	if len(req.Statuses) > 0 {
		all, err = s.applicationRepo.FindByStatusIn(ctx, req.Statuses)
	} else {
		all, err = s.applicationRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load furnish applications: %w", err)
	}

	filtered := make([]model.FurnishApplication, 0, len(all))
	for _, app := range all {
		if matchesFilters(&app, &req) {
			filtered = append(filtered, app)
		}
	}

	sortApplications(filtered, req.SortBy, req.SortDirection)

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	totalRecords := int64(len(filtered))
	totalPages := int((totalRecords + int64(pageSize) - 1) / int64(pageSize))

	from := (page - 1) * pageSize
	if from > len(filtered) {
		from = len(filtered)
	}
	to := from + pageSize
	if to > len(filtered) {
		to = len(filtered)
	}

	summaries := make([]FurnishApplicationSummary, 0, to-from)
	for _, app := range filtered[from:to] {
		summaries = append(summaries, s.toSummary(ctx, &app))
	}

	log.Printf("Found %d furnish applications (page %d/%d)", totalRecords, page, totalPages)

	return &FurnishApplicationListResponse{
		Applications: summaries,
		TotalRecords: totalRecords,
		CurrentPage:  page,
		TotalPages:   totalPages,
	}, nil
}

// GetApplicationDetail loads one application with its derived fields and
// attachment metadata.
func (s *FurnishDashboardService) GetApplicationDetail(ctx context.Context, txnNo string) (*FurnishApplicationDetail, error) {
	app, err := s.applicationRepo.FindByTxnNo(ctx, txnNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, txnNo)
		}
		return nil, fmt.Errorf("failed to load furnish application: %w", err)
	}

	stage := "N/A"
	amount := decimal.Zero
	if notice, err := s.noticeRepo.FindByNoticeNo(ctx, app.NoticeNo); err == nil {
		stage = notice.CurrentProcessingStage
		amount = notice.CompositionAmount
	}

	docs, err := s.docRepo.FindByTxnNo(ctx, txnNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	documents := make([]DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		documents = append(documents, DocumentInfo{
			TxnNo:        doc.TxnNo,
			AttachmentID: doc.AttachmentID,
			DocName:      doc.DocName,
		})
	}

	return &FurnishApplicationDetail{
		FurnishApplication:     *app,
		CurrentProcessingStage: stage,
		CompositionAmount:      amount,
		WorkingDaysPending:     WorkingDaysBetween(app.CreatedAt, s.now()),
		Documents:              documents,
	}, nil
}

func matchesFilters(app *model.FurnishApplication, req *FurnishApplicationListRequest) bool {
	if req.NoticeNo != "" && !containsFold(app.NoticeNo, req.NoticeNo) {
		return false
	}
	if req.VehicleNo != "" && !strings.EqualFold(app.VehicleNo, req.VehicleNo) {
		return false
	}
	if req.FurnishIDNo != "" && !containsFold(app.FurnishIDNo, req.FurnishIDNo) {
		return false
	}
	if req.SubmissionDateFrom != nil && app.CreatedAt.Before(*req.SubmissionDateFrom) {
		return false
	}
	if req.SubmissionDateTo != nil && app.CreatedAt.After(*req.SubmissionDateTo) {
		return false
	}
	return true
}

func sortApplications(apps []model.FurnishApplication, sortBy, direction string) {
	ascending := strings.EqualFold(direction, "ASC")

	// For descending order the operands are swapped rather than the result
	// negated, so equal keys still compare false and stability holds.
	sort.SliceStable(apps, func(i, j int) bool {
		if !ascending {
			i, j = j, i
		}
		switch sortBy {
		case "noticeNo":
			return apps[i].NoticeNo < apps[j].NoticeNo
		case "vehicleNo":
			return apps[i].VehicleNo < apps[j].VehicleNo
		case "status":
			return apps[i].Status < apps[j].Status
		default: // submissionDate
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
	})
}

func (s *FurnishDashboardService) toSummary(ctx context.Context, app *model.FurnishApplication) FurnishApplicationSummary {
	stage := "N/A"
	if notice, err := s.noticeRepo.FindByNoticeNo(ctx, app.NoticeNo); err == nil {
		stage = notice.CurrentProcessingStage
	}

	return FurnishApplicationSummary{
		TxnNo:                  app.TxnNo,
		NoticeNo:               app.NoticeNo,
		VehicleNo:              app.VehicleNo,
		OffenceDate:            app.OffenceDate,
		PpCode:                 app.PpCode,
		PpName:                 app.PpName,
		CurrentProcessingStage: stage,
		Status:                 app.Status,
		SubmissionDate:         app.CreatedAt,
		WorkingDaysPending:     WorkingDaysBetween(app.CreatedAt, s.now()),
		FurnishName:            app.FurnishName,
		FurnishIDNo:            app.FurnishIDNo,
		OwnerDriverIndicator:   app.OwnerDriverIndicator,
	}
}

// WorkingDaysBetween counts the calendar days in (from, to] that fall on a
// weekday. Public holidays are not modeled; officers accept the slight
// overcount around them.
func WorkingDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	workingDays := 0
	for day := fromDay.AddDate(0, 0, 1); !day.After(toDay); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			workingDays++
		}
	}
	return workingDays
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
