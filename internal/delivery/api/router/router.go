// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nudge/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PushHandler     *handler.PushHandler
	ReminderHandler *handler.ReminderHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	pushHandler     *handler.PushHandler
	reminderHandler *handler.ReminderHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		pushHandler:     params.PushHandler,
		reminderHandler: params.ReminderHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	pushGroup := e.Group("/push")
	{
		pushGroup.POST("/subscribe", r.pushHandler.Subscribe)
		pushGroup.POST("/fcm-token", r.pushHandler.RegisterFCMToken)
		pushGroup.POST("/data", r.pushHandler.SyncData)
		pushGroup.GET("/public-key", r.pushHandler.PublicKey)
		pushGroup.POST("/send", r.pushHandler.Send)
		pushGroup.GET("/devices/:deviceId", r.pushHandler.GetDevice)

		// cron services call with GET, manual triggers with POST
		pushGroup.GET("/reminders", r.reminderHandler.RunReminders)
		pushGroup.POST("/reminders", r.reminderHandler.RunReminders)
	}
}
