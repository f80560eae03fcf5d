package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeInvalidCredentials     = "invalid_credentials"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeValidationFailed    = "validation_failed"
	ErrCodeMissingField        = "missing_field"
	ErrCodeMismatchedAnswerSet = "mismatched_answer_set"
	ErrCodeInvalidQuestionIDs  = "invalid_question_ids"
	ErrCodeEmptyConfigPatch    = "empty_config_patch"
	ErrCodeImportRejected      = "import_rejected"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeNoQuestions   = "no_questions"
	ErrCodeAlreadyExists = "already_exists"

	// Availability
	ErrCodeQuizInactive       = "quiz_inactive"
	ErrCodeServiceUnavailable = "service_unavailable"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
