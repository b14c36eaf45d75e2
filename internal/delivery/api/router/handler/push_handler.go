package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"nudge/internal/delivery/api/response"
	"nudge/internal/domain/entity"
	"nudge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PushHandlerParams holds dependencies for PushHandler, injected by Fx.
type PushHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// PushHandler serves the device mirroring endpoints under /push
type PushHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewPushHandler is the constructor for PushHandler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// SubscribeRequest represents the request body for storing a Web Push subscription
type SubscribeRequest struct {
	DeviceID     string             `json:"deviceId" validate:"required"`
	Subscription *entity.PushTarget `json:"subscription" validate:"required"`
}

// FCMTokenRequest represents the request body for storing an FCM token
type FCMTokenRequest struct {
	DeviceID string `json:"deviceId" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// SyncDataRequest mirrors the client's domain data. Fields that are not JSON arrays are stored empty.
type SyncDataRequest struct {
	DeviceID    string          `json:"deviceId" validate:"required"`
	FollowUps   json.RawMessage `json:"followUps"`
	DailyStatus json.RawMessage `json:"dailyStatus"`
	Broadcasts  json.RawMessage `json:"broadcasts"`
	// ScheduledPosts is stored as sent
	ScheduledPosts json.RawMessage `json:"scheduledPosts"`
}

// SendRequest addresses a test notification to a stored device or to a raw subscription
type SendRequest struct {
	DeviceID     string             `json:"deviceId" validate:"required_without=Subscription"`
	Subscription *entity.PushTarget `json:"subscription"`
	Title        string             `json:"title"`
	Body         string             `json:"body"`
	URL          string             `json:"url"`
}

// PublicKeyResponse carries the VAPID public key
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// SendResponse reports a delivered test notification
type SendResponse struct {
	Success bool               `json:"success"`
	Meta    *response.MetaInfo `json:"meta"`
}

// Subscribe handles POST /push/subscribe
func (h *PushHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Missing deviceId or subscription.")
	}

	if _, err := h.deviceUC.Subscribe(c.Request().Context(), req.DeviceID, req.Subscription); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Ack(c)
}

// RegisterFCMToken handles POST /push/fcm-token
func (h *PushHandler) RegisterFCMToken(c echo.Context) error {
	var req FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Missing deviceId or token.")
	}

	if _, err := h.deviceUC.RegisterFCMToken(c.Request().Context(), req.DeviceID, req.Token); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Ack(c)
}

// SyncData handles POST /push/data
func (h *PushHandler) SyncData(c echo.Context) error {
	var req SyncDataRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid data input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Missing deviceId.")
	}

	input := &usecase.SyncDataInput{DeviceID: req.DeviceID}

	var err error
	if input.FollowUps, err = decodeArray[entity.FollowUpEntry](req.FollowUps); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid followUps.")
	}
	if input.DailyStatus, err = decodeArray[entity.DailyStatusEntry](req.DailyStatus); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid dailyStatus.")
	}
	if input.Broadcasts, err = decodeArray[entity.BroadcastEntry](req.Broadcasts); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid broadcasts.")
	}
	if input.ScheduledPosts, err = rawArray(req.ScheduledPosts); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid scheduledPosts.")
	}

	if _, err := h.deviceUC.SyncData(c.Request().Context(), input); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Ack(c)
}

// GetDevice handles GET /push/devices/:deviceId
func (h *PushHandler) GetDevice(c echo.Context) error {
	record, err := h.deviceUC.GetDevice(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entity.Device{ID: c.Param("deviceId"), Record: record})
}

// PublicKey handles GET /push/public-key
func (h *PushHandler) PublicKey(c echo.Context) error {
	publicKey, err := h.deviceUC.PublicKey()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, PublicKeyResponse{PublicKey: publicKey})
}

// Send handles POST /push/send
func (h *PushHandler) Send(c echo.Context) error {
	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid push input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Missing deviceId or subscription.")
	}

	url := req.URL
	if url == "" {
		url = "/"
	}

	err := h.deviceUC.SendTestPush(c.Request().Context(), &usecase.TestPushInput{
		DeviceID: req.DeviceID,
		Target:   req.Subscription,
		Message: entity.PushMessage{
			Title: req.Title,
			Body:  req.Body,
			URL:   url,
		},
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, SendResponse{Success: true, Meta: response.Meta(c)})
}

// decodeArray keeps the client contract: anything but a JSON array becomes an empty list.
func decodeArray[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}

// rawArray keeps a JSON array verbatim and turns anything else into an empty one.
func rawArray(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return json.RawMessage("[]"), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}
