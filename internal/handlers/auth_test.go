package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	gsessions "github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore отказывается сохранять сессию.
type brokenStore struct {
	cookie.Store
}

func (brokenStore) Save(*http.Request, http.ResponseWriter, *gsessions.Session) error {
	return errors.New("cookie too large")
}

func TestSessionHandler_LogoutReportsSaveError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("inventory_session", brokenStore{cookie.NewStore([]byte("secret"))}))
	r.DELETE("/api/session", NewSessionHandler(nil).Logout)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/session", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "DATABASE_ERROR", body.Error.Code)
}
