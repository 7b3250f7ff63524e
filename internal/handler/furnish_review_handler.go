package handler

import (
	"net/http"

	"ocms/internal/middleware"
	"ocms/internal/model"
	"ocms/internal/service"
	"ocms/pkg/response"

	"github.com/gin-gonic/gin"
)

type FurnishReviewHandler struct {
	approvalService  *service.FurnishApprovalService
	rejectionService *service.FurnishRejectionService
}

// NewFurnishReviewHandler sets up the routing dependencies for officer
// approve/reject decisions
func NewFurnishReviewHandler(approvalService *service.FurnishApprovalService, rejectionService *service.FurnishRejectionService) *FurnishReviewHandler {
	return &FurnishReviewHandler{
		approvalService:  approvalService,
		rejectionService: rejectionService,
	}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FurnishReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	applications := router.Group("/furnish/applications")
	{
		applications.PUT("/:txnNo/approve", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.ApproveApplication)
		applications.PUT("/:txnNo/reject", middleware.RequireRole(model.RoleAdmin, model.RoleOfficer), h.RejectApplication)
	}
}

// officerID resolves the acting officer from the JWT claims set by RequireRole.
func officerID(c *gin.Context) string {
	if name, ok := c.Get("userName"); ok {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	if id, ok := c.Get("userID"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "UNKNOWN"
}

// ApproveApplication approves a pending furnish application
// @Summary      Approve a furnish application
// @Description  Officer approves a pending application: furnished party becomes current offender, the TS-PDP suspension is revived and requested notifications go out.
// @Tags         furnish
// @Accept       json
// @Produce      json
// @Param        txnNo    path      string                          true   "Furnish transaction number"
// @Param        payload  body      service.FurnishApprovalRequest  false  "Approval Payload"
// @Success      200      {object}  response.Response{data=service.Success}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/applications/{txnNo}/approve [put]
func (h *FurnishReviewHandler) ApproveApplication(c *gin.Context) {
	txnNo := c.Param("txnNo")

	var req service.FurnishApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Allow empty body — every field is optional
		req = service.FurnishApprovalRequest{}
	}

	result := h.approvalService.Approve(c.Request.Context(), txnNo, officerID(c), &req)
	writeResult(c, result)
}

// RejectApplication rejects a pending furnish application
// @Summary      Reject a furnish application
// @Description  Officer rejects a pending application with a reason code. The TS-PDP suspension stays in place so the owner can resubmit.
// @Tags         furnish
// @Accept       json
// @Produce      json
// @Param        txnNo    path      string                           true  "Furnish transaction number"
// @Param        payload  body      service.FurnishRejectionRequest  true  "Rejection Payload"
// @Success      200      {object}  response.Response{data=service.Success}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /furnish/applications/{txnNo}/reject [put]
func (h *FurnishReviewHandler) RejectApplication(c *gin.Context) {
	txnNo := c.Param("txnNo")

	var req service.FurnishRejectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result := h.rejectionService.Reject(c.Request.Context(), txnNo, officerID(c), &req)
	writeResult(c, result)
}
