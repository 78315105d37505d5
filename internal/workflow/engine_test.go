package workflow_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"findmydocs/internal/domain"
	"findmydocs/internal/workflow"
)

func newRequest(role domain.UserRole) *domain.DocumentRequest {
	return &domain.DocumentRequest{
		ID:            uuid.New(),
		Kind:          domain.KindExcuse,
		SubmitterID:   uuid.New(),
		SubmitterName: "Jane Perera",
		SubmitterRole: role,
		Reason:        "Missed midterm due to illness",
		Approvals:     domain.ApprovalLog{},
	}
}

func decisionFor(role domain.UserRole, decision domain.Decision, comment string) workflow.DecisionInput {
	return workflow.DecisionInput{
		ActorID:   uuid.New(),
		ActorName: "Approver " + string(role),
		ActorRole: role,
		Decision:  decision,
		Comment:   comment,
	}
}

func TestEngine_ResolveInitialStage_ByRole(t *testing.T) {
	e := workflow.NewEngine()

	cases := []struct {
		role        domain.UserRole
		wantOrdinal int
	}{
		{domain.RoleStudent, 1},
		{domain.RoleLecturer, 2},
		{domain.RoleHOD, 3},
		{domain.RoleDean, 4},
		{domain.RoleVC, 5},
		{domain.RoleStaff, 1},
		{domain.RoleAdmin, 1},
	}
	for _, tc := range cases {
		stage, err := e.ResolveInitialStage(tc.role)
		assert.NoError(t, err, "role %s", tc.role)
		assert.Equal(t, tc.wantOrdinal, stage.Ordinal, "role %s", tc.role)
	}
}

func TestEngine_ResolveInitialStage_UnknownRole(t *testing.T) {
	e := workflow.NewEngine()

	_, err := e.ResolveInitialStage(domain.UserRole("Janitor"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestEngine_PlanSubmission_Student(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)

	intents, err := e.PlanSubmission(req)

	assert.NoError(t, err)
	assert.Equal(t, 1, req.CurrentStage)
	assert.Equal(t, workflow.StagePendingLecturer, req.Status)
	assert.Len(t, intents, 2)
	assert.Equal(t, req.SubmitterID, intents[0].UserID)
	assert.Equal(t, domain.RoleLecturer, intents[1].Role)
}

func TestEngine_PlanSubmission_VCIsAutoApproved(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleVC)

	intents, err := e.PlanSubmission(req)

	assert.NoError(t, err)
	assert.Equal(t, workflow.StageApproved, req.Status)
	assert.Len(t, intents, 2)
	for _, intent := range intents {
		assert.Equal(t, req.SubmitterID, intent.UserID)
		assert.Empty(t, intent.Role)
	}
	assert.Equal(t, domain.SeveritySuccess, intents[1].Severity)
}

func TestEngine_ApplyDecision_ApproveAdvancesOneStage(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)
	_, err := e.PlanSubmission(req)
	assert.NoError(t, err)

	now := time.Now().UTC()
	result, err := e.ApplyDecision(req, decisionFor(domain.RoleLecturer, domain.DecisionApprove, "ok"), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.From.Ordinal)
	assert.Equal(t, 2, result.To.Ordinal)
	assert.Equal(t, workflow.StagePendingHOD, req.Status)
	assert.Len(t, req.Approvals, 1)
	assert.Equal(t, domain.DecisionApprove, req.Approvals[0].Decision)
	assert.Equal(t, now, req.UpdatedAt)

	// Submitter progress plus next approver group.
	assert.Len(t, result.Intents, 2)
	assert.Equal(t, domain.RoleHOD, result.Intents[1].Role)
}

func TestEngine_ApplyDecision_WrongRoleAtEveryStage(t *testing.T) {
	e := workflow.NewEngine()

	approvers := []domain.UserRole{
		domain.RoleLecturer, domain.RoleHOD, domain.RoleDean, domain.RoleVC,
	}
	for ordinal := 1; ordinal <= 4; ordinal++ {
		expected := approvers[ordinal-1]
		for role := range domain.ValidRoles {
			if role == expected {
				continue
			}
			req := newRequest(domain.RoleStudent)
			req.CurrentStage = ordinal
			req.Status = e.Stages()[ordinal].Name

			_, err := e.ApplyDecision(req, decisionFor(role, domain.DecisionApprove, ""), time.Now().UTC())

			assert.ErrorIs(t, err, domain.ErrNotExpectedApprover,
				"stage %d should only accept %s, got decision from %s", ordinal, expected, role)
			assert.Equal(t, ordinal, req.CurrentStage, "failed precondition must not mutate the request")
			assert.Empty(t, req.Approvals)
		}
	}
}

func TestEngine_ApplyDecision_FinalApproval(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)
	req.CurrentStage = 4
	req.Status = workflow.StagePendingVC

	result, err := e.ApplyDecision(req, decisionFor(domain.RoleVC, domain.DecisionApprove, ""), time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, workflow.StageApproved, req.Status)
	assert.Len(t, result.Intents, 1)
	assert.Equal(t, req.SubmitterID, result.Intents[0].UserID)
	assert.Equal(t, domain.SeveritySuccess, result.Intents[0].Severity)
}

func TestEngine_ApplyDecision_RejectRequiresReason(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)
	_, err := e.PlanSubmission(req)
	assert.NoError(t, err)

	for _, comment := range []string{"", "   ", "\t\n"} {
		_, err := e.ApplyDecision(req, decisionFor(domain.RoleLecturer, domain.DecisionReject, comment), time.Now().UTC())
		assert.ErrorIs(t, err, domain.ErrMissingRejectReason)
		assert.Equal(t, 1, req.CurrentStage)
		assert.Empty(t, req.Approvals)
	}
}

func TestEngine_ApplyDecision_RejectFromAnyStage(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)
	_, err := e.PlanSubmission(req)
	assert.NoError(t, err)

	// Two approvals before the rejection.
	_, err = e.ApplyDecision(req, decisionFor(domain.RoleLecturer, domain.DecisionApprove, ""), time.Now().UTC())
	assert.NoError(t, err)
	_, err = e.ApplyDecision(req, decisionFor(domain.RoleHOD, domain.DecisionApprove, ""), time.Now().UTC())
	assert.NoError(t, err)

	result, err := e.ApplyDecision(req, decisionFor(domain.RoleDean, domain.DecisionReject, "quota exhausted"), time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, workflow.StageRejected, req.Status)
	assert.Equal(t, "quota exhausted", req.RejectionReason)

	// Earlier approvals stay in the trail.
	assert.Len(t, req.Approvals, 3)
	assert.Equal(t, domain.DecisionApprove, req.Approvals[0].Decision)
	assert.Equal(t, domain.DecisionApprove, req.Approvals[1].Decision)
	assert.Equal(t, domain.DecisionReject, req.Approvals[2].Decision)

	assert.Len(t, result.Intents, 1)
	assert.Equal(t, domain.SeverityError, result.Intents[0].Severity)
	assert.Contains(t, result.Intents[0].Message, "quota exhausted")
}

func TestEngine_ApplyDecision_TerminalStagesAreSinks(t *testing.T) {
	e := workflow.NewEngine()

	for _, status := range []string{workflow.StageApproved, workflow.StageRejected} {
		req := newRequest(domain.RoleStudent)
		for _, s := range e.Stages() {
			if s.Name == status {
				req.CurrentStage = s.Ordinal
			}
		}
		req.Status = status
		before := *req

		for role := range domain.ValidRoles {
			for _, decision := range []domain.Decision{domain.DecisionApprove, domain.DecisionReject} {
				_, err := e.ApplyDecision(req, decisionFor(role, decision, "late"), time.Now().UTC())
				assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
			}
		}
		assert.Equal(t, before.CurrentStage, req.CurrentStage)
		assert.Equal(t, before.Status, req.Status)
	}
}

func TestEngine_FullChain_StudentToApproved(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleStudent)
	_, err := e.PlanSubmission(req)
	assert.NoError(t, err)

	chain := []domain.UserRole{
		domain.RoleLecturer, domain.RoleHOD, domain.RoleDean, domain.RoleVC,
	}
	for _, role := range chain {
		_, err := e.ApplyDecision(req, decisionFor(role, domain.DecisionApprove, ""), time.Now().UTC())
		assert.NoError(t, err, "approval by %s", role)
	}

	assert.Equal(t, workflow.StageApproved, req.Status)
	assert.Len(t, req.Approvals, 4)
	for i, role := range chain {
		assert.Equal(t, role, req.Approvals[i].ActorRole)
	}
}

func TestEngine_FullChain_HODSubmissionSkipsOwnStage(t *testing.T) {
	e := workflow.NewEngine()
	req := newRequest(domain.RoleHOD)
	_, err := e.PlanSubmission(req)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StagePendingDean, req.Status)

	// Lecturer and HOD never act on an HOD's own submission.
	_, err = e.ApplyDecision(req, decisionFor(domain.RoleLecturer, domain.DecisionApprove, ""), time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotExpectedApprover)

	_, err = e.ApplyDecision(req, decisionFor(domain.RoleDean, domain.DecisionApprove, ""), time.Now().UTC())
	assert.NoError(t, err)
	_, err = e.ApplyDecision(req, decisionFor(domain.RoleVC, domain.DecisionApprove, ""), time.Now().UTC())
	assert.NoError(t, err)

	assert.Equal(t, workflow.StageApproved, req.Status)
	assert.Len(t, req.Approvals, 2)
}
