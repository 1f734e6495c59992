package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "razzrel/internal/errors"
	"razzrel/internal/middleware"
	"razzrel/internal/model"
	"razzrel/internal/service"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// CreateNotificationRequest addresses a notification to a user.
type CreateNotificationRequest struct {
	UserID         uint    `json:"userId" validate:"required"`
	Message        string  `json:"message" validate:"required"`
	Type           string  `json:"type" validate:"omitempty,oneof=success error info reaction comment share mention"`
	RelatedContent *string `json:"relatedContent"`
}

// userNotificationTypes are the types any user may send to another user.
// Status types are reserved for admins and the booking workflow.
var userNotificationTypes = map[model.NotificationType]bool{
	model.NotificationReaction: true,
	model.NotificationComment:  true,
	model.NotificationShare:    true,
	model.NotificationMention:  true,
}

// CreateNotification godoc
// @Summary Send a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNotificationRequest true "Notification"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/notifications [post]
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req CreateNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	typ := model.NotificationType(req.Type)
	if typ == "" {
		typ = model.NotificationInfo
	}
	if !p.IsAdmin() && !userNotificationTypes[typ] {
		return apperrors.ErrForbidden
	}

	actor := p.UserID
	n, err := h.svc.Emit(c.Request().Context(), service.EmitInput{
		UserID:         req.UserID,
		Message:        req.Message,
		Type:           typ,
		RelatedContent: req.RelatedContent,
		ActionUserID:   &actor,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Notification created", echo.Map{"notification": n})
}

// ListNotifications godoc
// @Summary Latest notifications of the caller
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of notifications (default 10, max 50)"
// @Success 200 {object} SuccessResponse
// @Router /api/notifications [get]
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	notifications, err := h.svc.List(c.Request().Context(), p.UserID, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notifications retrieved", echo.Map{"notifications": notifications})
}

// UnreadCount godoc
// @Summary Number of unread notifications of the caller
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/notifications/unread [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	count, err := h.svc.UnreadCount(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Unread count retrieved", echo.Map{"count": count})
}

// MarkAllRead godoc
// @Summary Mark every notification of the caller as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/notifications/mark-read [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	updated, err := h.svc.MarkRead(c.Request().Context(), p.UserID, nil)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notifications marked as read", echo.Map{"updated": updated})
}

// MarkRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.svc.MarkRead(c.Request().Context(), p.UserID, &id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notification marked as read", echo.Map{"updated": updated})
}
