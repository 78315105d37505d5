package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"findmydocs/internal/domain"
	"findmydocs/internal/service"
	"findmydocs/internal/workflow"
	"findmydocs/mocks"
)

func newRequestService(
	requestRepo *mocks.MockRequestRepo,
	userRepo *mocks.MockUserRepo,
	notifRepo *mocks.MockNotificationRepo,
) service.RequestService {
	return service.NewRequestService(workflow.NewEngine(), requestRepo, userRepo, notifRepo)
}

func TestRequestService_Submit_StudentRequest(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	submitterID := uuid.New()
	lecturer := domain.User{ID: uuid.New(), Role: domain.RoleLecturer, IsActive: true}

	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(req *domain.DocumentRequest) bool {
		return req.CurrentStage == 1 && req.Status == workflow.StagePendingLecturer
	})).Return(nil)
	userRepo.On("ListByRole", mock.Anything, domain.RoleLecturer).Return([]domain.User{lecturer}, nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req, err := svc.Submit(context.Background(), service.SubmitRequestInput{
		Kind:          domain.KindLeave,
		Reason:        "Family emergency",
		SubmitterID:   submitterID,
		SubmitterName: "Nimal Silva",
		SubmitterRole: domain.RoleStudent,
	})

	assert.NoError(t, err)
	assert.Equal(t, workflow.StagePendingLecturer, req.Status)
	requestRepo.AssertExpectations(t)

	// One notification for the submitter, one for the lecturer.
	notifRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestRequestService_Submit_UnknownKind(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	_, err := svc.Submit(context.Background(), service.SubmitRequestInput{
		Kind:          domain.RequestKind("transcript"),
		Reason:        "anything",
		SubmitterRole: domain.RoleStudent,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRequestKind)
	requestRepo.AssertNotCalled(t, "Create")
}

func TestRequestService_Submit_UnknownRole(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	_, err := svc.Submit(context.Background(), service.SubmitRequestInput{
		Kind:          domain.KindExcuse,
		Reason:        "anything",
		SubmitterRole: domain.UserRole("Registrar"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	requestRepo.AssertNotCalled(t, "Create")
}

func TestRequestService_Decide_Approve(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	actorID := uuid.New()
	requestID := uuid.New()
	actor := &domain.User{ID: actorID, Name: "Dr. Fernando", Role: domain.RoleLecturer, IsActive: true}

	pending := &domain.DocumentRequest{
		ID:            requestID,
		Kind:          domain.KindExcuse,
		SubmitterID:   uuid.New(),
		SubmitterRole: domain.RoleStudent,
		CurrentStage:  1,
		Status:        workflow.StagePendingLecturer,
		Approvals:     domain.ApprovalLog{},
	}

	userRepo.On("GetByID", mock.Anything, actorID).Return(actor, nil)
	requestRepo.On("GetByID", mock.Anything, requestID).Return(pending, nil)
	requestRepo.On("UpdateStage", mock.Anything, mock.Anything, 1).Return(nil)
	userRepo.On("ListByRole", mock.Anything, domain.RoleHOD).Return([]domain.User{
		{ID: uuid.New(), Role: domain.RoleHOD, IsActive: true},
	}, nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req, err := svc.Decide(context.Background(), requestID, service.DecideInput{
		ActorID:   actorID,
		ActorRole: domain.RoleLecturer,
		Decision:  domain.DecisionApprove,
	})

	assert.NoError(t, err)
	assert.Equal(t, workflow.StagePendingHOD, req.Status)
	assert.Len(t, req.Approvals, 1)
	assert.Equal(t, "Dr. Fernando", req.Approvals[0].ActorName)
	requestRepo.AssertExpectations(t)
}

func TestRequestService_Decide_RetriesOnStageConflict(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	actorID := uuid.New()
	requestID := uuid.New()
	actor := &domain.User{ID: actorID, Name: "Dean Jay", Role: domain.RoleDean, IsActive: true}
	userRepo.On("GetByID", mock.Anything, actorID).Return(actor, nil)

	// Every fetch returns a fresh pending copy; every CAS loses the race.
	submitterID := uuid.New()
	for i := 0; i < 3; i++ {
		requestRepo.On("GetByID", mock.Anything, requestID).Return(&domain.DocumentRequest{
			ID:            requestID,
			Kind:          domain.KindLetter,
			SubmitterID:   submitterID,
			SubmitterRole: domain.RoleStudent,
			CurrentStage:  3,
			Status:        workflow.StagePendingDean,
			Approvals:     domain.ApprovalLog{},
		}, nil).Once()
	}
	requestRepo.On("UpdateStage", mock.Anything, mock.Anything, 3).Return(domain.ErrStageConflict).Times(3)

	_, err := svc.Decide(context.Background(), requestID, service.DecideInput{
		ActorID:   actorID,
		ActorRole: domain.RoleDean,
		Decision:  domain.DecisionApprove,
	})

	assert.ErrorIs(t, err, domain.ErrStageConflict)
	requestRepo.AssertExpectations(t)
	notifRepo.AssertNotCalled(t, "Create")
}

func TestRequestService_Decide_WrongRole(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	actorID := uuid.New()
	requestID := uuid.New()
	userRepo.On("GetByID", mock.Anything, actorID).Return(&domain.User{
		ID: actorID, Name: "Prof. Dias", Role: domain.RoleDean, IsActive: true,
	}, nil)
	requestRepo.On("GetByID", mock.Anything, requestID).Return(&domain.DocumentRequest{
		ID:            requestID,
		SubmitterRole: domain.RoleStudent,
		CurrentStage:  1,
		Status:        workflow.StagePendingLecturer,
		Approvals:     domain.ApprovalLog{},
	}, nil)

	_, err := svc.Decide(context.Background(), requestID, service.DecideInput{
		ActorID:   actorID,
		ActorRole: domain.RoleDean,
		Decision:  domain.DecisionApprove,
	})

	assert.ErrorIs(t, err, domain.ErrNotExpectedApprover)
	requestRepo.AssertNotCalled(t, "UpdateStage")
}

func TestRequestService_Decide_NotificationFailureDoesNotFailDecision(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	actorID := uuid.New()
	requestID := uuid.New()
	userRepo.On("GetByID", mock.Anything, actorID).Return(&domain.User{
		ID: actorID, Name: "VC Office", Role: domain.RoleVC, IsActive: true,
	}, nil)
	requestRepo.On("GetByID", mock.Anything, requestID).Return(&domain.DocumentRequest{
		ID:            requestID,
		Kind:          domain.KindExcuse,
		SubmitterID:   uuid.New(),
		SubmitterRole: domain.RoleStudent,
		CurrentStage:  4,
		Status:        workflow.StagePendingVC,
		Approvals:     domain.ApprovalLog{},
	}, nil)
	requestRepo.On("UpdateStage", mock.Anything, mock.Anything, 4).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	req, err := svc.Decide(context.Background(), requestID, service.DecideInput{
		ActorID:   actorID,
		ActorRole: domain.RoleVC,
		Decision:  domain.DecisionApprove,
	})

	assert.NoError(t, err)
	assert.Equal(t, workflow.StageApproved, req.Status)
}

func TestRequestService_GetByID_EnforcesVisibility(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	submitterID := uuid.New()
	requestID := uuid.New()
	requestRepo.On("GetByID", mock.Anything, requestID).Return(&domain.DocumentRequest{
		ID:           requestID,
		SubmitterID:  submitterID,
		CurrentStage: 2,
		Status:       workflow.StagePendingHOD,
	}, nil)

	_, err := svc.GetByID(context.Background(), submitterID, domain.RoleStudent, requestID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New(), domain.RoleStudent, requestID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), uuid.New(), domain.RoleHOD, requestID)
	assert.NoError(t, err, "approver at the current stage may view")
}

func TestRequestService_ListPendingForRole(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	pending := []domain.DocumentRequest{{ID: uuid.New(), Status: workflow.StagePendingHOD}}
	requestRepo.On("ListByStatus", mock.Anything, workflow.StagePendingHOD).Return(pending, nil)

	got, err := svc.ListPendingForRole(context.Background(), domain.RoleHOD)
	assert.NoError(t, err)
	assert.Equal(t, pending, got)

	// Roles outside the chain have nothing pending and hit no repository.
	got, err = svc.ListPendingForRole(context.Background(), domain.RoleStudent)
	assert.NoError(t, err)
	assert.Empty(t, got)
	requestRepo.AssertNumberOfCalls(t, "ListByStatus", 1)
}

func TestRequestService_Delete_SubmitterOnly(t *testing.T) {
	requestRepo := new(mocks.MockRequestRepo)
	userRepo := new(mocks.MockUserRepo)
	notifRepo := new(mocks.MockNotificationRepo)
	svc := newRequestService(requestRepo, userRepo, notifRepo)

	submitterID := uuid.New()
	requestID := uuid.New()
	requestRepo.On("GetByID", mock.Anything, requestID).Return(&domain.DocumentRequest{
		ID:          requestID,
		SubmitterID: submitterID,
	}, nil)

	err := svc.Delete(context.Background(), uuid.New(), domain.RoleLecturer, requestID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	requestRepo.On("Delete", mock.Anything, requestID).Return(nil)
	err = svc.Delete(context.Background(), submitterID, domain.RoleStudent, requestID)
	assert.NoError(t, err)
}
