// Package router maps the HTTP API onto the controllers.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/integration/entrypoint/controller"
	"github.com/commitly/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the API controllers. A nil controller leaves its routes unregistered.
type Controllers struct {
	Health       *controller.HealthController
	Auth         *controller.AuthController
	User         *controller.UserController
	Goal         *controller.GoalController
	Activity     *controller.ActivityController
	Completion   *controller.CompletionController
	Partnership  *controller.PartnershipController
	Notification *controller.NotificationController
}

type Router struct {
	engine        *gin.Engine
	c             Controllers
	loginLimiter  *middleware.RateLimiter
	authenticator *middleware.Authenticator
}

// NewRouter builds the router. loginLimiter may be nil; without an authenticator
// only /health is served.
func NewRouter(c Controllers, loginLimiter *middleware.RateLimiter, authenticator *middleware.Authenticator) *Router {
	return &Router{c: c, loginLimiter: loginLimiter, authenticator: authenticator}
}

// Setup creates the gin engine and registers every route.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	if r.c.Health != nil {
		r.engine.GET("/health", r.c.Health.Check)
	}
	if r.authenticator != nil {
		r.api(r.engine.Group("/api/v1"), r.authenticator.Authenticate())
	}

	return r.engine
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) api(v1 *gin.RouterGroup, authenticated gin.HandlerFunc) {
	if c := r.c.Auth; c != nil {
		auth := v1.Group("/auth")
		auth.POST("/register", c.Register)
		login := []gin.HandlerFunc{c.Login}
		if r.loginLimiter != nil {
			login = append([]gin.HandlerFunc{r.loginLimiter.Limit()}, login...)
		}
		auth.POST("/login", login...)
		auth.POST("/refresh", c.RefreshToken)
		auth.POST("/logout", authenticated, c.Logout)
	}

	if c := r.c.User; c != nil {
		me := v1.Group("/me", authenticated)
		me.GET("", c.GetProfile)
		me.PATCH("", c.UpdateProfile)
		me.DELETE("", c.DeleteAccount)
	}

	if c := r.c.Goal; c != nil {
		goals := v1.Group("/goals", authenticated)
		goals.GET("", c.List)
		goals.POST("", c.Create)
		goals.GET("/:id", c.Get)
		goals.PATCH("/:id", c.Update)
		goals.DELETE("/:id", c.Delete)
		goals.POST("/:id/status", c.ChangeStatus)
		goals.POST("/:id/progress", c.ReportProgress)

		if a := r.c.Activity; a != nil {
			goals.GET("/:id/activities", a.List)
			goals.POST("/:id/activities", a.Create)
			goals.PATCH("/:id/activities/:activity_id", a.Update)
			goals.DELETE("/:id/activities/:activity_id", a.Delete)
		}

		if cc := r.c.Completion; cc != nil {
			goals.POST("/:id/completions", cc.Record)
			goals.GET("/:id/completions", cc.List)
			goals.GET("/:id/streak", cc.GetStreak)
		}
	}

	if c := r.c.Partnership; c != nil {
		partnerships := v1.Group("/partnerships", authenticated)
		partnerships.GET("", c.List)
		partnerships.POST("", c.Create)
		partnerships.POST("/:id/respond", c.Respond)
		partnerships.DELETE("/:id", c.Delete)
	}

	if c := r.c.Notification; c != nil {
		notifications := v1.Group("/notifications", authenticated)
		notifications.GET("", c.List)
		notifications.GET("/unread-count", c.UnreadCount)
		notifications.POST("/read-all", c.MarkAllRead)
		notifications.POST("/:id/read", c.MarkRead)
	}
}
