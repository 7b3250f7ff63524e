package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ocms/internal/middleware"
	"ocms/internal/model"
	"ocms/internal/service"
	"ocms/pkg/pagination"
	"ocms/pkg/response"

	"github.com/gin-gonic/gin"
)

type FurnishDashboardHandler struct {
	dashboardService *service.FurnishDashboardService
	auditService     *service.FurnishAuditService
}

// NewFurnishDashboardHandler sets up the routing dependencies for officer
// dashboard endpoints
func NewFurnishDashboardHandler(dashboardService *service.FurnishDashboardService, auditService *service.FurnishAuditService) *FurnishDashboardHandler {
	return &FurnishDashboardHandler{
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FurnishDashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	applications := router.Group("/furnish/applications")
	{
		applications.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.ListApplications)
		applications.GET("/:txnNo", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.GetApplicationDetail)
		applications.GET("/:txnNo/audit", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.GetApplicationAudit)
	}
	router.GET("/furnish/audit", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.ListAuditEvents)
}

// ListApplications returns the officer review queue
// @Summary      List furnish applications
// @Description  Paginated dashboard listing with status, notice, vehicle, furnished-ID and submission date filters.
// @Tags         furnish
// @Produce      json
// @Param        status     query     string  false  "Comma-separated status codes (P, A, R)"
// @Param        notice_no  query     string  false  "Partial notice number"
// @Param        vehicle_no query     string  false  "Exact vehicle number (case-insensitive)"
// @Param        furnish_id_no query  string  false  "Partial furnished party ID"
// @Param        date_from  query     string  false  "Submission date from (RFC 3339)"
// @Param        date_to    query     string  false  "Submission date to (RFC 3339)"
// @Param        sort_by    query     string  false  "noticeNo, vehicleNo, status or submissionDate"
// @Param        sort_dir   query     string  false  "ASC or DESC"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200  {object}  response.Response{data=service.FurnishApplicationListResponse}
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/applications [get]
func (h *FurnishDashboardHandler) ListApplications(c *gin.Context) {
	params := pagination.Parse(c)

	req := service.FurnishApplicationListRequest{
		NoticeNo:      c.Query("notice_no"),
		VehicleNo:     c.Query("vehicle_no"),
		FurnishIDNo:   c.Query("furnish_id_no"),
		SortBy:        c.Query("sort_by"),
		SortDirection: c.DefaultQuery("sort_dir", "ASC"),
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	if statuses := c.Query("status"); statuses != "" {
		req.Statuses = strings.Split(statuses, ",")
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			req.SubmissionDateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			req.SubmissionDateTo = &t
		}
	}

	result, err := h.dashboardService.ListFurnishApplications(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetApplicationDetail returns one application with derived fields
// @Summary      Get furnish application detail
// @Description  Full application view with processing stage, composition amount, working days pending and attachments.
// @Tags         furnish
// @Produce      json
// @Param        txnNo  path      string  true  "Furnish transaction number"
// @Success      200    {object}  response.Response{data=service.FurnishApplicationDetail}
// @Failure      404    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/applications/{txnNo} [get]
func (h *FurnishDashboardHandler) GetApplicationDetail(c *gin.Context) {
	txnNo := c.Param("txnNo")

	detail, err := h.dashboardService.GetApplicationDetail(c.Request.Context(), txnNo)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.TypedError(http.StatusNotFound, service.ErrorTypeNotFound, err.Error(), nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// GetApplicationAudit returns the audit trail for one application
// @Summary      Get furnish application audit trail
// @Description  Ordered workflow events recorded for the application, one per pipeline step.
// @Tags         furnish
// @Produce      json
// @Param        txnNo  path      string  true  "Furnish transaction number"
// @Success      200    {object}  response.Response{data=[]model.AuditEvent}
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/applications/{txnNo}/audit [get]
func (h *FurnishDashboardHandler) GetApplicationAudit(c *gin.Context) {
	events, err := h.auditService.History(c.Request.Context(), c.Param("txnNo"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, events))
}

// ListAuditEvents returns the workflow-wide audit feed
// @Summary      List audit events
// @Description  Paginated feed of all furnish workflow events, newest first.
// @Tags         furnish
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]model.AuditEvent}
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/audit [get]
func (h *FurnishDashboardHandler) ListAuditEvents(c *gin.Context) {
	params := pagination.Parse(c)

	events, total, err := h.auditService.ListEvents(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   events,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}
