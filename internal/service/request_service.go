package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
	"findmydocs/internal/workflow"
)

// maxDecideAttempts bounds the re-fetch loop when a concurrent decision
// wins the compare-and-swap.
const maxDecideAttempts = 3

// SubmitRequestInput is the DTO for submitting a document request.
type SubmitRequestInput struct {
	Kind         domain.RequestKind `json:"kind" binding:"required"`
	Reason       string             `json:"reason" binding:"required"`
	Details      json.RawMessage    `json:"details"`
	AttachmentID *uuid.UUID         `json:"attachment_id"`

	SubmitterID   uuid.UUID       `json:"-"`
	SubmitterName string          `json:"-"`
	SubmitterRole domain.UserRole `json:"-"`
}

// DecideInput is the DTO for an approve/reject action.
type DecideInput struct {
	ActorID   uuid.UUID
	ActorRole domain.UserRole
	Decision  domain.Decision
	Comment   string
}

// RequestService defines the document request workflow contract.
type RequestService interface {
	Submit(ctx context.Context, input SubmitRequestInput) (*domain.DocumentRequest, error)
	Decide(ctx context.Context, requestID uuid.UUID, input DecideInput) (*domain.DocumentRequest, error)
	GetByID(ctx context.Context, viewerID uuid.UUID, viewerRole domain.UserRole, id uuid.UUID) (*domain.DocumentRequest, error)
	List(ctx context.Context, offset, limit int) ([]domain.DocumentRequest, int, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.DocumentRequest, error)
	ListPendingForRole(ctx context.Context, role domain.UserRole) ([]domain.DocumentRequest, error)
	Delete(ctx context.Context, viewerID uuid.UUID, viewerRole domain.UserRole, id uuid.UUID) error
}

type requestService struct {
	engine      *workflow.Engine
	requestRepo port.DocumentRequestRepository
	userRepo    port.UserRepository
	notifRepo   port.NotificationRepository
}

// NewRequestService creates a new RequestService implementation.
func NewRequestService(
	engine *workflow.Engine,
	requestRepo port.DocumentRequestRepository,
	userRepo port.UserRepository,
	notifRepo port.NotificationRepository,
) RequestService {
	return &requestService{
		engine:      engine,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
	}
}

func (s *requestService) Submit(ctx context.Context, input SubmitRequestInput) (*domain.DocumentRequest, error) {
	if !domain.ValidRequestKinds[input.Kind] {
		return nil, domain.ErrInvalidRequestKind
	}

	req := &domain.DocumentRequest{
		ID:            uuid.New(),
		Kind:          input.Kind,
		SubmitterID:   input.SubmitterID,
		SubmitterName: input.SubmitterName,
		SubmitterRole: input.SubmitterRole,
		Reason:        input.Reason,
		Details:       input.Details,
		AttachmentID:  input.AttachmentID,
		Approvals:     domain.ApprovalLog{},
	}

	intents, err := s.engine.PlanSubmission(req)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	s.dispatch(ctx, intents)
	return req, nil
}

func (s *requestService) Decide(ctx context.Context, requestID uuid.UUID, input DecideInput) (*domain.DocumentRequest, error) {
	actor, err := s.userRepo.GetByID(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("looking up approver: %w", err)
	}

	for attempt := 1; attempt <= maxDecideAttempts; attempt++ {
		req, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}

		expected := req.CurrentStage
		result, err := s.engine.ApplyDecision(req, workflow.DecisionInput{
			ActorID:   input.ActorID,
			ActorName: actor.Name,
			ActorRole: input.ActorRole,
			Decision:  input.Decision,
			Comment:   input.Comment,
		}, time.Now().UTC())
		if err != nil {
			return nil, err
		}

		err = s.requestRepo.UpdateStage(ctx, req, expected)
		if errors.Is(err, domain.ErrStageConflict) {
			log.Printf("requestService.Decide: stage conflict on %s (attempt %d/%d), retrying", requestID, attempt, maxDecideAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.dispatch(ctx, result.Intents)
		return req, nil
	}
	return nil, domain.ErrStageConflict
}

// dispatch delivers notification intents after a transition has been
// persisted. Delivery is fire-and-forget: failures must never roll back
// the already-applied stage change, so they are only logged.
func (s *requestService) dispatch(ctx context.Context, intents []workflow.Intent) {
	for _, intent := range intents {
		if intent.Role != "" {
			users, err := s.userRepo.ListByRole(ctx, intent.Role)
			if err != nil {
				log.Printf("requestService.dispatch: listing %s accounts: %v", intent.Role, err)
				continue
			}
			if len(users) == 0 {
				log.Printf("requestService.dispatch: no users with role %s to notify", intent.Role)
				continue
			}
			for _, u := range users {
				s.notify(ctx, u.ID, intent.Message, intent.Severity)
			}
			continue
		}
		s.notify(ctx, intent.UserID, intent.Message, intent.Severity)
	}
}

func (s *requestService) notify(ctx context.Context, userID uuid.UUID, message string, severity domain.NotificationSeverity) {
	err := s.notifRepo.Create(ctx, &domain.Notification{
		UserID:   userID,
		Message:  message,
		Severity: severity,
	})
	if err != nil {
		log.Printf("requestService.notify: creating notification for %s: %v", userID, err)
	}
}

func (s *requestService) GetByID(ctx context.Context, viewerID uuid.UUID, viewerRole domain.UserRole, id uuid.UUID) (*domain.DocumentRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.engine.CanView(viewerID, viewerRole, req) {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

func (s *requestService) List(ctx context.Context, offset, limit int) ([]domain.DocumentRequest, int, error) {
	return s.requestRepo.List(ctx, offset, limit)
}

func (s *requestService) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.DocumentRequest, error) {
	return s.requestRepo.ListBySubmitter(ctx, submitterID)
}

func (s *requestService) ListPendingForRole(ctx context.Context, role domain.UserRole) ([]domain.DocumentRequest, error) {
	stage, ok := s.engine.StageForApprover(role)
	if !ok {
		// Roles without a stage in the chain have nothing pending.
		return []domain.DocumentRequest{}, nil
	}
	return s.requestRepo.ListByStatus(ctx, stage.Name)
}

func (s *requestService) Delete(ctx context.Context, viewerID uuid.UUID, viewerRole domain.UserRole, id uuid.UUID) error {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.engine.CanDelete(viewerID, viewerRole, req) {
		return domain.ErrForbidden
	}
	return s.requestRepo.Delete(ctx, id)
}
