package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
	ContextKeyTask   = "task"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "staff_session"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// MaxUploadSize caps task file uploads at 25 MiB.
const MaxUploadSize = 25 << 20
