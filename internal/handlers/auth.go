package handlers

import (
	"net/http"
	"strings"

	"it-inventory/internal/apperrors"
	"it-inventory/internal/middleware"
	"it-inventory/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionHandler запоминает email оператора в cookie-сессии; дальше он
// подставляется в updatedBy/createdBy, если клиент их не передал.
type SessionHandler struct {
	staff *services.StaffService
}

func NewSessionHandler(staff *services.StaffService) *SessionHandler {
	return &SessionHandler{staff: staff}
}

type sessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	email := strings.TrimSpace(req.Email)

	// оператором может быть только существующий сотрудник
	if _, err := h.staff.GetByEmail(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.OperatorKey, email)
	if err := sess.Save(); err != nil {
		respondError(c, apperrors.Internal(apperrors.CodeDatabase, "save session", err))
		return
	}
	respond(c, http.StatusOK, "Operator session started", gin.H{"email": email})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		respondError(c, apperrors.Internal(apperrors.CodeDatabase, "save session", err))
		return
	}
	respond(c, http.StatusOK, "Operator session cleared", nil)
}

func (h *SessionHandler) Current(c *gin.Context) {
	operator, ok := middleware.Operator(c)
	if !ok {
		respondError(c, apperrors.NotFound(apperrors.CodeStaffNotFound, "no operator session", "", ""))
		return
	}
	respond(c, http.StatusOK, "Operator session active", gin.H{"email": operator})
}
