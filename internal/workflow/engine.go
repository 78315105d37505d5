package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// Intent is a notification the caller should deliver after persisting a
// transition. Exactly one of UserID or Role is set: UserID addresses a
// single account, Role addresses every account holding that role.
type Intent struct {
	UserID   uuid.UUID
	Role     domain.UserRole
	Message  string
	Severity domain.NotificationSeverity
}

// DecisionInput carries the acting approver's identity and verdict.
type DecisionInput struct {
	ActorID   uuid.UUID
	ActorName string
	ActorRole domain.UserRole
	Decision  domain.Decision
	Comment   string
}

// DecisionResult reports an applied transition.
type DecisionResult struct {
	From    Stage
	To      Stage
	Intents []Intent
}

// Engine owns the stage table and computes workflow transitions. It is
// stateless and reentrant: all mutable state lives on the DocumentRequest
// passed in, so concurrent deciders are serialized at the repository
// boundary, not here.
type Engine struct {
	stages          []Stage
	rejectedOrdinal int
}

// NewEngine builds the engine over the canonical stage table. The table is
// a process-wide constant, so a structural defect is a programming error.
func NewEngine() *Engine {
	if err := validateStages(approvalStages); err != nil {
		panic(fmt.Sprintf("workflow: invalid stage table: %v", err))
	}
	e := &Engine{stages: approvalStages}
	for _, s := range approvalStages {
		if s.Name == StageRejected {
			e.rejectedOrdinal = s.Ordinal
		}
	}
	return e
}

// Stages returns a copy of the stage table.
func (e *Engine) Stages() []Stage {
	out := make([]Stage, len(e.stages))
	copy(out, e.stages)
	return out
}

// StageByOrdinal looks up a stage by its position.
func (e *Engine) StageByOrdinal(ordinal int) (Stage, bool) {
	if ordinal < 0 || ordinal >= len(e.stages) {
		return Stage{}, false
	}
	return e.stages[ordinal], true
}

// StageForApprover returns the stage a role acts on, if any. Roles outside
// the chain (Student, Staff, Admin) have no stage.
func (e *Engine) StageForApprover(role domain.UserRole) (Stage, bool) {
	for _, s := range e.stages {
		if s.ApproverRole != "" && s.ApproverRole == role {
			return s, true
		}
	}
	return Stage{}, false
}

// ResolveInitialStage computes the stage a new submission starts at, given
// the submitter's role.
func (e *Engine) ResolveInitialStage(role domain.UserRole) (Stage, error) {
	if !role.Valid() {
		return Stage{}, domain.ErrInvalidRole
	}
	ordinal, ok := initialStageByRole[role]
	if !ok {
		ordinal = fallbackInitialStage
	}
	return e.stages[ordinal], nil
}

// PlanSubmission stamps the initial stage onto a new request and returns
// the notification intents for it. The request must carry its submitter
// fields; the caller persists it and then delivers the intents.
func (e *Engine) PlanSubmission(req *domain.DocumentRequest) ([]Intent, error) {
	stage, err := e.ResolveInitialStage(req.SubmitterRole)
	if err != nil {
		return nil, err
	}

	req.CurrentStage = stage.Ordinal
	req.Status = stage.Name
	if req.Approvals == nil {
		req.Approvals = domain.ApprovalLog{}
	}

	label := req.Kind.Label()
	intents := []Intent{{
		UserID:   req.SubmitterID,
		Message:  fmt.Sprintf("Your %s has been submitted. Status: %s.", label, stage.Name),
		Severity: domain.SeverityInfo,
	}}
	if stage.Terminal {
		// VC submissions land directly on Approved.
		intents = append(intents, Intent{
			UserID:   req.SubmitterID,
			Message:  fmt.Sprintf("Your %s has been fully approved.", label),
			Severity: domain.SeveritySuccess,
		})
	} else {
		intents = append(intents, Intent{
			Role:     stage.ApproverRole,
			Message:  fmt.Sprintf("New %s from %s is awaiting your approval.", label, req.SubmitterName),
			Severity: domain.SeverityInfo,
		})
	}
	return intents, nil
}

// ApplyDecision validates and applies one approve/reject transition to the
// request in memory. Preconditions are checked in order and a failed
// precondition leaves the request untouched. The caller persists the
// mutated request with a compare-and-swap on the previous ordinal and then
// delivers the returned intents.
func (e *Engine) ApplyDecision(req *domain.DocumentRequest, in DecisionInput, now time.Time) (*DecisionResult, error) {
	from, ok := e.StageByOrdinal(req.CurrentStage)
	if !ok {
		return nil, fmt.Errorf("request %s has out-of-range stage ordinal %d", req.ID, req.CurrentStage)
	}
	if from.Terminal {
		return nil, domain.ErrAlreadyFinalized
	}
	if from.ApproverRole == "" || in.ActorRole != from.ApproverRole {
		return nil, domain.ErrNotExpectedApprover
	}

	comment := strings.TrimSpace(in.Comment)
	if in.Decision == domain.DecisionReject && comment == "" {
		return nil, domain.ErrMissingRejectReason
	}

	var to Stage
	switch in.Decision {
	case domain.DecisionApprove:
		to = e.stages[from.Ordinal+1]
	case domain.DecisionReject:
		to = e.stages[e.rejectedOrdinal]
	default:
		return nil, fmt.Errorf("unknown decision %q", in.Decision)
	}

	req.CurrentStage = to.Ordinal
	req.Status = to.Name
	req.UpdatedAt = now
	req.Approvals = append(req.Approvals, domain.ApprovalEntry{
		ActorID:   in.ActorID,
		ActorName: in.ActorName,
		ActorRole: in.ActorRole,
		Decision:  in.Decision,
		Comment:   comment,
		DecidedAt: now,
	})

	label := req.Kind.Label()
	var intents []Intent
	switch {
	case in.Decision == domain.DecisionReject:
		req.RejectionReason = comment
		intents = []Intent{{
			UserID:   req.SubmitterID,
			Message:  fmt.Sprintf("Your %s for %s has been rejected by %s. Reason: %s", label, req.Reason, in.ActorRole, comment),
			Severity: domain.SeverityError,
		}}
	case to.Terminal:
		intents = []Intent{{
			UserID:   req.SubmitterID,
			Message:  fmt.Sprintf("Your %s for %s has been fully approved.", label, req.Reason),
			Severity: domain.SeveritySuccess,
		}}
	default:
		intents = []Intent{
			{
				UserID:   req.SubmitterID,
				Message:  fmt.Sprintf("Your %s for %s has been approved by %s. Current status: %s.", label, req.Reason, in.ActorRole, to.Name),
				Severity: domain.SeverityInfo,
			},
			{
				Role:     to.ApproverRole,
				Message:  fmt.Sprintf("New %s from %s is awaiting your approval.", label, req.SubmitterName),
				Severity: domain.SeverityInfo,
			},
		}
	}

	return &DecisionResult{From: from, To: to, Intents: intents}, nil
}
