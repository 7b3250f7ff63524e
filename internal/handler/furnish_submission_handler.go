package handler

import (
	"net/http"

	"ocms/internal/service"
	"ocms/pkg/response"

	"github.com/gin-gonic/gin"
)

type FurnishSubmissionHandler struct {
	submissionService *service.FurnishSubmissionService
}

// NewFurnishSubmissionHandler sets up the routing dependencies for the public
// eService submission endpoint
func NewFurnishSubmissionHandler(submissionService *service.FurnishSubmissionService) *FurnishSubmissionHandler {
	return &FurnishSubmissionHandler{submissionService: submissionService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FurnishSubmissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	furnish := router.Group("/furnish")
	{
		// Public: vehicle owners submit through the eService portal
		furnish.POST("/submissions", h.SubmitFurnish)
	}
}

// SubmitFurnish accepts an owner's furnish submission
// @Summary      Submit a furnish application
// @Description  Vehicle owner declares the actual hirer or driver for an offence notice. Runs auto-approval checks; either approves immediately or queues for officer review.
// @Tags         furnish
// @Accept       json
// @Produce      json
// @Param        payload  body      service.FurnishSubmissionRequest  true  "Furnish Submission Payload"
// @Success      200      {object}  response.Response{data=service.Success}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /furnish/submissions [post]
func (h *FurnishSubmissionHandler) SubmitFurnish(c *gin.Context) {
	var req service.FurnishSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result := h.submissionService.Submit(c.Request.Context(), &req)
	writeResult(c, result)
}
