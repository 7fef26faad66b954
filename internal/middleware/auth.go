package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	OperatorKey        = "operator"
	operatorContextKey = "CurrentOperator"
)

// InjectOperator кладёт email оператора из сессии в контекст запроса.
func InjectOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if email, ok := sess.Get(OperatorKey).(string); ok && email != "" {
			c.Set(operatorContextKey, email)
		}
		c.Next()
	}
}

func Operator(c *gin.Context) (string, bool) {
	email := c.GetString(operatorContextKey)
	return email, email != ""
}
