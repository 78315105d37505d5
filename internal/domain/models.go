package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an approved account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	NIC          string    `db:"nic" json:"nic"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	IndexNumber  string    `db:"index_number" json:"index_number"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Registration is a pending account application awaiting admin review.
type Registration struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	NIC          string    `db:"nic" json:"nic"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	IndexNumber  string    `db:"index_number" json:"index_number"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ApprovalEntry is one decision recorded against a request. Entries are
// only ever appended, never rewritten.
type ApprovalEntry struct {
	ActorID   uuid.UUID `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	ActorRole UserRole  `json:"actor_role"`
	Decision  Decision  `json:"decision"`
	Comment   string    `json:"comment"`
	DecidedAt time.Time `json:"decided_at"`
}

// ApprovalLog is the append-only audit trail of a request, stored as JSONB.
type ApprovalLog []ApprovalEntry

// Value implements driver.Valuer for JSONB storage.
func (l ApprovalLog) Value() (driver.Value, error) {
	if l == nil {
		l = ApprovalLog{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (l *ApprovalLog) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = ApprovalLog{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("ApprovalLog.Scan: unsupported type %T", src)
	}
}

// DocumentRequest is a submitted document flowing through the approval
// chain. Kind-specific payload fields live in Details, which the workflow
// never inspects.
type DocumentRequest struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Kind            RequestKind     `db:"kind" json:"kind"`
	SubmitterID     uuid.UUID       `db:"submitter_id" json:"submitter_id"`
	SubmitterName   string          `db:"submitter_name" json:"submitter_name"`
	SubmitterRole   UserRole        `db:"submitter_role" json:"submitter_role"`
	Reason          string          `db:"reason" json:"reason"`
	Details         json.RawMessage `db:"details" json:"details"`
	AttachmentID    *uuid.UUID      `db:"attachment_id" json:"attachment_id"`
	CurrentStage    int             `db:"current_stage" json:"current_stage"`
	Status          string          `db:"status" json:"status"`
	RejectionReason string          `db:"rejection_reason" json:"rejection_reason"`
	Approvals       ApprovalLog     `db:"approvals" json:"approvals"`
	SubmittedAt     time.Time       `db:"submitted_at" json:"submitted_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Notification is one entry in a user's notification feed.
type Notification struct {
	ID        uuid.UUID            `db:"id" json:"id"`
	UserID    uuid.UUID            `db:"user_id" json:"user_id"`
	Message   string               `db:"message" json:"message"`
	Severity  NotificationSeverity `db:"severity" json:"severity"`
	Read      bool                 `db:"read" json:"read"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
}

// FileMeta stores metadata about an uploaded attachment.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
