package workflow

import (
	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// CanView decides whether a user may read a request. Admins see
// everything, submitters see their own requests, and an approver sees a
// request while it sits at their stage. Kept separate from the transition
// engine so query handlers don't re-implement status-string matching.
func (e *Engine) CanView(viewerID uuid.UUID, viewerRole domain.UserRole, req *domain.DocumentRequest) bool {
	if viewerRole == domain.RoleAdmin {
		return true
	}
	if req.SubmitterID == viewerID {
		return true
	}
	stage, ok := e.StageForApprover(viewerRole)
	if !ok {
		return false
	}
	return req.CurrentStage == stage.Ordinal
}

// CanDelete decides whether a user may remove a request: admins always,
// submitters only their own.
func (e *Engine) CanDelete(viewerID uuid.UUID, viewerRole domain.UserRole, req *domain.DocumentRequest) bool {
	if viewerRole == domain.RoleAdmin {
		return true
	}
	return req.SubmitterID == viewerID
}
