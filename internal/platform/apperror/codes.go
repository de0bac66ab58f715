package apperror

// ErrorCode is the general system-level category of an error.
// Values use lower_snake_case so they can be serialized directly
// into API error envelopes.
type ErrorCode string

const (
	CodeUnauthenticated  ErrorCode = "unauthenticated"
	CodeForbidden        ErrorCode = "forbidden"
	CodeNotFound         ErrorCode = "not_found"
	CodeValidationFailed ErrorCode = "validation_error"
	CodeConflict         ErrorCode = "conflict"
	CodeInternalError    ErrorCode = "internal_server_error"
)

// BusinessCode identifies the specific business reason behind an error
type BusinessCode string

const (
	BusinessCodeGeneral            BusinessCode = "general"
	BusinessCodeInvalidFormat      BusinessCode = "invalid_format"
	BusinessCodeInvalidEmail       BusinessCode = "invalid_email"
	BusinessCodePermissionDenied   BusinessCode = "permission_denied"
	BusinessCodeInvalidCredentials BusinessCode = "invalid_credentials"
	BusinessCodeInvalidToken       BusinessCode = "invalid_token"
	BusinessCodeTokenExpired       BusinessCode = "token_expired"
	BusinessCodeUserNotFound       BusinessCode = "user_not_found"
	BusinessCodeEmailTaken         BusinessCode = "email_taken"
	BusinessCodePostNotFound       BusinessCode = "post_not_found"
	BusinessCodeCommentNotFound    BusinessCode = "comment_not_found"
	BusinessCodeSlugAlreadyExists  BusinessCode = "slug_already_exists"
)
