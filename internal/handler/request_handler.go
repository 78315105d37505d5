package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"findmydocs/internal/domain"
	"findmydocs/internal/service"
)

// DecideBody is the request body for approve/reject actions.
type DecideBody struct {
	Comment string `json:"comment"`
}

// RequestHandler handles document request workflow endpoints.
type RequestHandler struct {
	requestService service.RequestService
	userService    service.UserService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService service.RequestService, userService service.UserService) *RequestHandler {
	return &RequestHandler{requestService: requestService, userService: userService}
}

// Submit handles POST /api/v1/requests
// @Summary Submit a document request
// @Description Submit an excuse request, leave request, or letter. The request enters the approval chain at the stage determined by the submitter's role.
// @Tags requests
// @Accept json
// @Produce json
// @Param input body service.SubmitRequestInput true "Request details"
// @Success 201 {object} APIResponse "Created request"
// @Failure 400 {object} APIResponse "Unknown request kind"
// @Security BearerAuth
// @Router /requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.SubmitRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	submitter, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	input.SubmitterID = userID
	input.SubmitterName = submitter.Name
	input.SubmitterRole = role

	req, err := h.requestService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, req)
}

// Approve handles POST /api/v1/requests/:id/approve
// @Summary Approve a request
// @Description Record an approval at the request's current stage and advance it to the next stage
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Param input body DecideBody false "Optional comment"
// @Success 200 {object} APIResponse "Updated request"
// @Failure 403 {object} APIResponse "Not the expected approver"
// @Failure 409 {object} APIResponse "Already finalized or concurrent modification"
// @Security BearerAuth
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	h.decide(c, domain.DecisionApprove)
}

// Reject handles POST /api/v1/requests/:id/reject
// @Summary Reject a request
// @Description Reject the request with a mandatory reason; the request moves to the terminal Rejected stage
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Param input body DecideBody true "Rejection reason"
// @Success 200 {object} APIResponse "Updated request"
// @Failure 400 {object} APIResponse "Missing rejection reason"
// @Failure 403 {object} APIResponse "Not the expected approver"
// @Failure 409 {object} APIResponse "Already finalized or concurrent modification"
// @Security BearerAuth
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	h.decide(c, domain.DecisionReject)
}

func (h *RequestHandler) decide(c *gin.Context, decision domain.Decision) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid request ID")
		return
	}

	var body DecideBody
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.requestService.Decide(c.Request.Context(), requestID, service.DecideInput{
		ActorID:   userID,
		ActorRole: role,
		Decision:  decision,
		Comment:   body.Comment,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// ListPending handles GET /api/v1/requests/pending
// @Summary List requests awaiting my approval
// @Description List requests currently sitting at the stage the caller's role approves
// @Tags requests
// @Produce json
// @Success 200 {object} APIResponse "Pending requests"
// @Security BearerAuth
// @Router /requests/pending [get]
func (h *RequestHandler) ListPending(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListPendingForRole(c.Request.Context(), role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, requests)
}

// ListMine handles GET /api/v1/requests/mine
// @Summary List my requests
// @Description List all requests submitted by the caller, newest first
// @Tags requests
// @Produce json
// @Success 200 {object} APIResponse "Submitted requests"
// @Security BearerAuth
// @Router /requests/mine [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListBySubmitter(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, requests)
}

// List handles GET /api/v1/requests
// @Summary List all requests
// @Description List all requests with pagination (admin only)
// @Tags requests
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse "All requests"
// @Failure 403 {object} APIResponse "Forbidden - admin only"
// @Security BearerAuth
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	requests, total, err := h.requestService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, requests, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/requests/:id
// @Summary Get a request
// @Description Get a single request with its full approval trail. Visible to the submitter, the approver whose stage it sits at, and admins.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Success 200 {object} APIResponse "Request"
// @Failure 403 {object} APIResponse "Forbidden"
// @Failure 404 {object} APIResponse "Request not found"
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *RequestHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid request ID")
		return
	}

	req, err := h.requestService.GetByID(c.Request.Context(), userID, role, requestID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// ListByUser handles GET /api/v1/requests/user/:id
// @Summary List requests by submitter
// @Description List all requests submitted by a given user (admin only)
// @Tags requests
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} APIResponse "Submitted requests"
// @Failure 403 {object} APIResponse "Forbidden - admin only"
// @Security BearerAuth
// @Router /requests/user/{id} [get]
func (h *RequestHandler) ListByUser(c *gin.Context) {
	submitterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	requests, err := h.requestService.ListBySubmitter(c.Request.Context(), submitterID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, requests)
}

// Delete handles DELETE /api/v1/requests/:id
// @Summary Delete a request
// @Description Delete a request. Allowed for the submitter and admins.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Success 200 {object} APIResponse "Deletion confirmation"
// @Failure 403 {object} APIResponse "Forbidden"
// @Failure 404 {object} APIResponse "Request not found"
// @Security BearerAuth
// @Router /requests/{id} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid request ID")
		return
	}

	if err := h.requestService.Delete(c.Request.Context(), userID, role, requestID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "request deleted"})
}
