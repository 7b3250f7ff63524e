package handler

import (
	"net/http"

	"ocms/internal/service"
	"ocms/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeResult maps a furnish pipeline result onto the HTTP response. Business
// errors return 200 with the error type discriminant: the request itself was
// processed, the outcome just requires follow-up. Clients must branch on
// error_type, not status code alone.
func writeResult(c *gin.Context, result service.FurnishResult) {
	switch r := result.(type) {
	case service.Success:
		c.JSON(http.StatusOK, response.Success(http.StatusOK, r))
	case service.ValidationError:
		c.JSON(http.StatusBadRequest, response.TypedError(http.StatusBadRequest, service.ErrorTypeValidation, r.Message, r))
	case service.BusinessError:
		c.JSON(http.StatusOK, response.TypedError(http.StatusOK, service.ErrorTypeBusiness, r.Message, r))
	case service.TechnicalError:
		c.JSON(http.StatusInternalServerError, response.TypedError(http.StatusInternalServerError, service.ErrorTypeTechnical, r.Message, r))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "unknown result type"))
	}
}
