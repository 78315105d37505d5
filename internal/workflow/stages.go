package workflow

import (
	"fmt"

	"findmydocs/internal/domain"
)

// Stage is one named step in the fixed approval sequence. ApproverRole is
// empty for non-actionable stages (the initial Submitted stage and the two
// terminal stages).
type Stage struct {
	Ordinal      int             `json:"ordinal"`
	Name         string          `json:"name"`
	ApproverRole domain.UserRole `json:"approver_role,omitempty"`
	Terminal     bool            `json:"terminal"`
}

// Stage names. The denormalized DocumentRequest.Status always holds one of
// these.
const (
	StageSubmitted       = "Submitted"
	StagePendingLecturer = "Pending Lecturer Approval"
	StagePendingHOD      = "Pending HOD Approval"
	StagePendingDean     = "Pending Dean Approval"
	StagePendingVC       = "Pending VC Approval"
	StageApproved        = "Approved"
	StageRejected        = "Rejected"
)

// approvalStages is the single canonical stage table shared by every
// request kind.
var approvalStages = []Stage{
	{Ordinal: 0, Name: StageSubmitted},
	{Ordinal: 1, Name: StagePendingLecturer, ApproverRole: domain.RoleLecturer},
	{Ordinal: 2, Name: StagePendingHOD, ApproverRole: domain.RoleHOD},
	{Ordinal: 3, Name: StagePendingDean, ApproverRole: domain.RoleDean},
	{Ordinal: 4, Name: StagePendingVC, ApproverRole: domain.RoleVC},
	{Ordinal: 5, Name: StageApproved, Terminal: true},
	{Ordinal: 6, Name: StageRejected, Terminal: true},
}

// initialStageByRole maps a submitter role to the ordinal its submission
// starts at. A submitter holding an approver role skips past their own
// stage; a VC submission needs no further approval at all. Enumerated
// roles without an entry (Staff, Admin) fall back to the first approver
// stage.
var initialStageByRole = map[domain.UserRole]int{
	domain.RoleStudent:  1,
	domain.RoleLecturer: 2,
	domain.RoleHOD:      3,
	domain.RoleDean:     4,
	domain.RoleVC:       5,
}

const fallbackInitialStage = 1

// validateStages checks the structural invariants of a stage table:
// contiguous 0-based ordinals, exactly one Approved and one Rejected
// terminal stage, and a distinct non-empty approver role on every
// non-terminal stage past the first.
func validateStages(stages []Stage) error {
	if len(stages) == 0 {
		return fmt.Errorf("stage table is empty")
	}
	approved, rejected := 0, 0
	seenRoles := map[domain.UserRole]string{}
	for i, s := range stages {
		if s.Ordinal != i {
			return fmt.Errorf("stage %q has ordinal %d, want %d", s.Name, s.Ordinal, i)
		}
		switch {
		case s.Name == StageApproved:
			approved++
			if !s.Terminal {
				return fmt.Errorf("stage %q must be terminal", s.Name)
			}
		case s.Name == StageRejected:
			rejected++
			if !s.Terminal {
				return fmt.Errorf("stage %q must be terminal", s.Name)
			}
		case i == 0:
			if s.ApproverRole != "" {
				return fmt.Errorf("initial stage %q must not have an approver role", s.Name)
			}
		default:
			if s.ApproverRole == "" {
				return fmt.Errorf("stage %q has no approver role", s.Name)
			}
			if prev, dup := seenRoles[s.ApproverRole]; dup {
				return fmt.Errorf("approver role %s assigned to both %q and %q", s.ApproverRole, prev, s.Name)
			}
			seenRoles[s.ApproverRole] = s.Name
		}
	}
	if approved != 1 || rejected != 1 {
		return fmt.Errorf("stage table needs exactly one Approved and one Rejected stage, got %d/%d", approved, rejected)
	}
	return nil
}
