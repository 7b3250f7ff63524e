package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocms/internal/service"
	"ocms/pkg/response"
)

func recordResult(t *testing.T, result service.FurnishResult) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	writeResult(c, result)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteResult(t *testing.T) {
	t.Run("success maps to 200", func(t *testing.T) {
		w, body := recordResult(t, service.Success{AutoApproved: true, Message: "ok"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", body.Status)
		assert.Empty(t, body.ErrorType)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		w, body := recordResult(t, service.ValidationError{Field: "notice_no", Message: "Notice number not found"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, service.ErrorTypeValidation, body.ErrorType)
	})

	t.Run("business error maps to 200 with discriminant", func(t *testing.T) {
		w, body := recordResult(t, service.BusinessError{
			CheckType:            service.ReasonAutoApprovalFailed,
			Message:              "requires manual review",
			RequiresManualReview: true,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, service.ErrorTypeBusiness, body.ErrorType)
	})

	t.Run("technical error maps to 500", func(t *testing.T) {
		w, body := recordResult(t, service.TechnicalError{Operation: "furnish submission", Message: "boom"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, service.ErrorTypeTechnical, body.ErrorType)
	})
}
