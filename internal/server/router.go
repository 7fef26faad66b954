package server

import (
	"net/http"

	"it-inventory/internal/config"
	"it-inventory/internal/handlers"
	"it-inventory/internal/middleware"
	"it-inventory/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const sessionName = "inventory_session"

type Services struct {
	Assets *services.AssetService
	Staff  *services.StaffService
}

func NewRouter(cfg *config.Config, log *logrus.Logger, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectOperator())

	assets := handlers.NewAssetHandler(svc.Assets)
	staff := handlers.NewStaffHandler(svc.Staff)
	session := handlers.NewSessionHandler(svc.Staff)

	api := r.Group("/api")

	// ОПЕРАТОР
	api.GET("/session", session.Current)
	api.POST("/session", session.Login)
	api.DELETE("/session", session.Logout)

	// АКТИВЫ
	api.GET("/assets", assets.List)
	api.POST("/assets", assets.Create)
	api.GET("/assets/serial/:serial", assets.GetBySerial)
	api.GET("/assets/:id", assets.Get)
	api.PATCH("/assets/:id/details", assets.UpdateDetails)

	// выдача сотруднику и снятие
	api.POST("/assets/:id/assignment", assets.Assign)
	api.DELETE("/assets/:id/assignment", assets.Unassign)

	// СОТРУДНИКИ
	api.GET("/staff", staff.List)
	api.POST("/staff", staff.Create)
	api.GET("/staff/:id", staff.Get)
	api.PATCH("/staff/:id/details", staff.UpdateDetails)

	// HEALTHCHECK И МЕТРИКИ
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))

	return r
}
