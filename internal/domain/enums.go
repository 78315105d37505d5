package domain

// UserRole identifies a user's position in the university hierarchy.
type UserRole string

const (
	RoleStudent  UserRole = "Student"
	RoleStaff    UserRole = "Staff"
	RoleLecturer UserRole = "Lecturer"
	RoleHOD      UserRole = "HOD"
	RoleDean     UserRole = "Dean"
	RoleVC       UserRole = "VC"
	RoleAdmin    UserRole = "Admin"
)

// ValidRoles enumerates every recognized role.
var ValidRoles = map[UserRole]bool{
	RoleStudent:  true,
	RoleStaff:    true,
	RoleLecturer: true,
	RoleHOD:      true,
	RoleDean:     true,
	RoleVC:       true,
	RoleAdmin:    true,
}

// Valid reports whether the role is part of the enumeration.
func (r UserRole) Valid() bool {
	return ValidRoles[r]
}

// RequestKind discriminates the concrete document-request type. The
// workflow treats all kinds identically; only the details payload differs.
type RequestKind string

const (
	KindExcuse RequestKind = "excuse"
	KindLeave  RequestKind = "leave"
	KindLetter RequestKind = "letter"
)

// ValidRequestKinds enumerates the accepted request kinds.
var ValidRequestKinds = map[RequestKind]bool{
	KindExcuse: true,
	KindLeave:  true,
	KindLetter: true,
}

// Label returns the human-readable name used in notification messages.
func (k RequestKind) Label() string {
	switch k {
	case KindExcuse:
		return "excuse request"
	case KindLeave:
		return "leave request"
	case KindLetter:
		return "letter"
	default:
		return "request"
	}
}

// Decision is the action an approver takes on a request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// NotificationSeverity classifies a notification for display.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeveritySuccess NotificationSeverity = "success"
	SeverityError   NotificationSeverity = "error"
)

// FileType represents the allowed attachment file types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded attachment.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
