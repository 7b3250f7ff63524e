package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"ocms/internal/model"
)

type FurnishDashboardSuite struct {
	suite.Suite
	ctx context.Context

	noticeRepo      *fakeNoticeRepo
	applicationRepo *fakeApplicationRepo
	docRepo         *fakeDocRepo
	dashboard       *FurnishDashboardService
}

func (s *FurnishDashboardSuite) SetupTest() {
	s.ctx = context.Background()
	s.noticeRepo = newFakeNoticeRepo()
	s.applicationRepo = newFakeApplicationRepo()
	s.docRepo = &fakeDocRepo{}
	s.dashboard = NewFurnishDashboardService(s.applicationRepo, s.docRepo, s.noticeRepo)
	s.dashboard.now = func() time.Time {
		return time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC) // a Friday
	}

	s.noticeRepo.add(model.OffenceNotice{
		NoticeNo:               "N500001",
		VehicleNo:              "SNP7890E",
		CurrentProcessingStage: model.StageDemandNote1,
		CompositionAmount:      decimal.NewFromFloat(70.00),
	})

	s.applicationRepo.apps["FURN-A"] = model.FurnishApplication{
		TxnNo:       "FURN-A",
		NoticeNo:    "N500001",
		VehicleNo:   "SNP7890E",
		FurnishIDNo: "S1234567D",
		Status:      model.FurnishStatusPending,
		CreatedAt:   time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), // Monday
	}
	s.applicationRepo.apps["FURN-B"] = model.FurnishApplication{
		TxnNo:       "FURN-B",
		NoticeNo:    "N500002",
		VehicleNo:   "SJB1111F",
		FurnishIDNo: "F1234567N",
		Status:      model.FurnishStatusApproved,
		CreatedAt:   time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC),
	}
	s.applicationRepo.apps["FURN-C"] = model.FurnishApplication{
		TxnNo:       "FURN-C",
		NoticeNo:    "N500003",
		VehicleNo:   "SNP7890E",
		FurnishIDNo: "S7654321F",
		Status:      model.FurnishStatusRejected,
		CreatedAt:   time.Date(2026, 8, 13, 9, 0, 0, 0, time.UTC),
	}
}

func TestFurnishDashboardSuite(t *testing.T) {
	suite.Run(t, new(FurnishDashboardSuite))
}

func (s *FurnishDashboardSuite) TestListFiltering() {
	s.Run("status filter", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			Statuses: []string{model.FurnishStatusPending},
		})
		s.Require().NoError(err)
		s.Require().Len(resp.Applications, 1)
		s.Equal("FURN-A", resp.Applications[0].TxnNo)
	})

	s.Run("partial notice number", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			NoticeNo: "50000",
		})
		s.Require().NoError(err)
		s.Len(resp.Applications, 3)
	})

	s.Run("exact vehicle number is case-insensitive", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			VehicleNo: "snp7890e",
		})
		s.Require().NoError(err)
		s.Len(resp.Applications, 2)
	})

	s.Run("date range", func() {
		from := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 12, 23, 59, 59, 0, time.UTC)
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			SubmissionDateFrom: &from,
			SubmissionDateTo:   &to,
		})
		s.Require().NoError(err)
		s.Require().Len(resp.Applications, 1)
		s.Equal("FURN-B", resp.Applications[0].TxnNo)
	})
}

func (s *FurnishDashboardSuite) TestListSortingAndPagination() {
	s.Run("default sort is submission date ascending", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{SortDirection: "ASC"})
		s.Require().NoError(err)
		s.Require().Len(resp.Applications, 3)
		s.Equal("FURN-A", resp.Applications[0].TxnNo)
		s.Equal("FURN-C", resp.Applications[2].TxnNo)
	})

	s.Run("sort by notice number descending", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			SortBy:        "noticeNo",
			SortDirection: "DESC",
		})
		s.Require().NoError(err)
		s.Equal("N500003", resp.Applications[0].NoticeNo)
	})

	s.Run("pagination", func() {
		resp, err := s.dashboard.ListFurnishApplications(s.ctx, FurnishApplicationListRequest{
			SortDirection: "ASC",
			Page:          2,
			PageSize:      2,
		})
		s.Require().NoError(err)
		s.Equal(int64(3), resp.TotalRecords)
		s.Equal(2, resp.TotalPages)
		s.Equal(2, resp.CurrentPage)
		s.Require().Len(resp.Applications, 1)
		s.Equal("FURN-C", resp.Applications[0].TxnNo)
	})
}

func (s *FurnishDashboardSuite) TestApplicationDetail() {
	s.docRepo.docs = []model.FurnishApplicationDoc{
		{TxnNo: "FURN-A", AttachmentID: 1, DocName: "rental-agreement.pdf"},
	}

	detail, err := s.dashboard.GetApplicationDetail(s.ctx, "FURN-A")
	s.Require().NoError(err)
	s.Equal(model.StageDemandNote1, detail.CurrentProcessingStage)
	s.Equal("70", detail.CompositionAmount.String())
	s.Require().Len(detail.Documents, 1)
	s.Equal("rental-agreement.pdf", detail.Documents[0].DocName)
	// Mon 10th to Fri 14th excludes the submission day itself.
	s.Equal(4, detail.WorkingDaysPending)
}

func (s *FurnishDashboardSuite) TestApplicationDetailNotFound() {
	_, err := s.dashboard.GetApplicationDetail(s.ctx, "FURN-NOPE")
	s.Require().ErrorIs(err, ErrApplicationNotFound)
}

func (s *FurnishDashboardSuite) TestApplicationDetailLookupFailure() {
	s.applicationRepo.findErr = errors.New("connection reset by peer")
	defer func() { s.applicationRepo.findErr = nil }()

	_, err := s.dashboard.GetApplicationDetail(s.ctx, "FURN-A")
	s.Require().Error(err)
	s.False(errors.Is(err, ErrApplicationNotFound))
}

func (s *FurnishDashboardSuite) TestDetailWithMissingNotice() {
	// Notice purged or archived: derived fields degrade instead of failing.
	detail, err := s.dashboard.GetApplicationDetail(s.ctx, "FURN-B")
	s.Require().NoError(err)
	s.Equal("N/A", detail.CurrentProcessingStage)
	s.True(detail.CompositionAmount.IsZero())
}

func TestWorkingDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", date(2026, 8, 12), date(2026, 8, 12), 0},
		{"friday to monday crosses a weekend", date(2026, 8, 14), date(2026, 8, 17), 1},
		{"full week", date(2026, 8, 10), date(2026, 8, 17), 5},
		{"saturday to sunday", date(2026, 8, 15), date(2026, 8, 16), 0},
		{"to before from", date(2026, 8, 17), date(2026, 8, 10), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WorkingDaysBetween(tc.from, tc.to); got != tc.want {
				t.Errorf("WorkingDaysBetween(%v, %v) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSortApplicationsStableForEqualKeys(t *testing.T) {
	apps := []model.FurnishApplication{
		{TxnNo: "FURN-1", Status: model.FurnishStatusPending},
		{TxnNo: "FURN-2", Status: model.FurnishStatusApproved},
		{TxnNo: "FURN-3", Status: model.FurnishStatusPending},
		{TxnNo: "FURN-4", Status: model.FurnishStatusPending},
	}

	sortApplications(apps, "status", "DESC")

	// Pending sorts above approved in descending order; the three pending
	// rows must keep their original relative order.
	want := []string{"FURN-1", "FURN-3", "FURN-4", "FURN-2"}
	for i, w := range want {
		if apps[i].TxnNo != w {
			t.Errorf("apps[%d].TxnNo = %s, want %s", i, apps[i].TxnNo, w)
		}
	}
}
