package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"findmydocs/internal/service"
)

// RejectRegistrationBody is the request body for rejecting a registration.
type RejectRegistrationBody struct {
	Reason string `json:"reason" binding:"required"`
}

// RegistrationHandler handles admin registration review endpoints.
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// List handles GET /api/v1/registrations
// @Summary List pending registrations
// @Description List account applications awaiting review (admin only)
// @Tags registrations
// @Produce json
// @Success 200 {object} APIResponse "Pending registrations"
// @Failure 403 {object} APIResponse "Forbidden - admin only"
// @Security BearerAuth
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	registrations, err := h.registrationService.ListPending(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, registrations)
}

// Approve handles POST /api/v1/registrations/:id/approve
// @Summary Approve a registration
// @Description Promote a pending registration to an active user account and email the applicant (admin only)
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID (UUID)"
// @Success 200 {object} APIResponse "Created user"
// @Failure 404 {object} APIResponse "Registration not found"
// @Security BearerAuth
// @Router /registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *gin.Context) {
	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid registration ID")
		return
	}

	user, err := h.registrationService.Approve(c.Request.Context(), registrationID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Reject handles POST /api/v1/registrations/:id/reject
// @Summary Reject a registration
// @Description Discard a pending registration and email the applicant the reason (admin only)
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID (UUID)"
// @Param input body RejectRegistrationBody true "Rejection reason"
// @Success 200 {object} APIResponse "Confirmation"
// @Failure 404 {object} APIResponse "Registration not found"
// @Security BearerAuth
// @Router /registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *gin.Context) {
	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid registration ID")
		return
	}

	var body RejectRegistrationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.registrationService.Reject(c.Request.Context(), registrationID, body.Reason); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "registration rejected"})
}
