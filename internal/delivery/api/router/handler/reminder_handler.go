package handler

import (
	"log/slog"
	"net/http"

	"nudge/internal/delivery/api/response"
	"nudge/internal/domain/entity"
	"nudge/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReminderHandlerParams holds dependencies for ReminderHandler, injected by Fx.
type ReminderHandlerParams struct {
	fx.In

	ReminderUC usecase.ReminderUsecase
	Logger     *slog.Logger
}

// ReminderHandler triggers reminder runs over HTTP
type ReminderHandler struct {
	reminderUC usecase.ReminderUsecase
	logger     *slog.Logger
}

// NewReminderHandler is the constructor for ReminderHandler
func NewReminderHandler(params ReminderHandlerParams) *ReminderHandler {
	return &ReminderHandler{
		reminderUC: params.ReminderUC,
		logger:     params.Logger,
	}
}

// RunResponse is the body of a completed run; the run totals are inlined.
type RunResponse struct {
	OK bool `json:"ok"`
	*entity.RunResult
	Meta *response.MetaInfo `json:"meta"`
}

// RunReminders handles GET|POST /push/reminders
func (h *ReminderHandler) RunReminders(c echo.Context) error {
	result, err := h.reminderUC.Run(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, RunResponse{
		OK:        true,
		RunResult: result,
		Meta:      response.Meta(c),
	})
}
