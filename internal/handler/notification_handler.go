package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"findmydocs/internal/service"
)

// NotificationHandler handles notification feed endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/v1/notifications
// @Summary List my notifications
// @Description List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {object} APIResponse "Notifications"
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, notifications)
}

// MarkRead handles PATCH /api/v1/notifications/:id/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} APIResponse "Confirmation"
// @Failure 404 {object} APIResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "notification marked as read"})
}

// Delete handles DELETE /api/v1/notifications/:id
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} APIResponse "Confirmation"
// @Failure 404 {object} APIResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid notification ID")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), userID, notificationID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "notification deleted"})
}

// DeleteAll handles DELETE /api/v1/notifications
// @Summary Clear my notification feed
// @Tags notifications
// @Produce json
// @Success 200 {object} APIResponse "Confirmation"
// @Security BearerAuth
// @Router /notifications [delete]
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteAllByUser(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "notifications cleared"})
}
