package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is inactive")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateNIC         = errors.New("nic already exists")
	ErrRegistrationPending  = errors.New("a registration with these details is already pending approval")
	ErrRequestNotFound      = errors.New("document request not found")
	ErrInvalidRole          = errors.New("role is not part of the approval hierarchy")
	ErrInvalidRequestKind   = errors.New("unknown document request kind")
	ErrAlreadyFinalized     = errors.New("request has already been finalized")
	ErrNotExpectedApprover  = errors.New("not the expected approver for this stage")
	ErrMissingRejectReason  = errors.New("a rejection requires a non-empty reason")
	ErrStageConflict        = errors.New("request was modified concurrently")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
)
