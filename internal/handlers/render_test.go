package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"it-inventory/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorResponse(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	return w.Code, body["error"].(map[string]any)
}

func TestRespondError_HidesInternalCause(t *testing.T) {
	status, body := errorResponse(t, apperrors.Internal(apperrors.CodeDatabase, "database transaction failed",
		errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "DATABASE_ERROR", body["code"])
	assert.Equal(t, "internal error", body["message"])
	assert.NotContains(t, body, "details")
}

func TestRespondError_UntypedIsInternal(t *testing.T) {
	status, body := errorResponse(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "DATABASE_ERROR", body["code"])
}

func TestRespondError_Conflict(t *testing.T) {
	status, body := errorResponse(t, apperrors.Conflict(apperrors.ReasonNeedsConfirmation,
		apperrors.CodeConflictingAssignment, "confirm to reassign", "assignedTo", "bob@x.com"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "confirm to reassign", body["message"])
	assert.Equal(t, map[string]any{"assignedTo": "bob@x.com", "reason": "NEEDS_CONFIRMATION"}, body["details"])
}

func TestActor_FallsBackToOperator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	got, ok := actor(c, "admin@x.com", "updatedBy")
	assert.True(t, ok)
	assert.Equal(t, "admin@x.com", got)

	c.Set("CurrentOperator", "alice@x.com")
	got, ok = actor(c, "", "updatedBy")
	assert.True(t, ok)
	assert.Equal(t, "alice@x.com", got)

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	_, ok = actor(c, "", "updatedBy")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
