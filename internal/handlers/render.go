package handlers

import (
	"net/http"

	"it-inventory/internal/apperrors"
	"it-inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    apperrors.Code    `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// respond: единый формат успешного ответа.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError переводит ошибку сервиса в HTTP-статус и конверт ошибки.
// Причина внутренних ошибок наружу не отдаётся, только в лог.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	body := errorBody{Code: apperrors.CodeOf(err), Message: "internal error"}
	if appErr, ok := apperrors.As(err); ok {
		body.Details = appErr.Details()
		if appErr.Kind != apperrors.KindInternal {
			body.Message = appErr.Message
		}
	}
	if status >= http.StatusInternalServerError {
		middleware.Logger(c).WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"success": false, "error": body})
}

// badRequest: ошибка разбора тела или параметров запроса.
func badRequest(c *gin.Context, err error) {
	respondError(c, apperrors.Validation(apperrors.CodeValidation, err.Error(), ""))
}

// actor: явно переданный updatedBy/createdBy, иначе оператор из сессии.
func actor(c *gin.Context, explicit, field string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if operator, ok := middleware.Operator(c); ok {
		return operator, true
	}
	respondError(c, apperrors.Validation(apperrors.CodeValidation,
		field+" is required when no operator session is set", field))
	return "", false
}
