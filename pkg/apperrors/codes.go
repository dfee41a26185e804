package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Бизнес-логика
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeAlreadyExists          ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	CodeConflict               ErrorCode = "CONFLICT"
	CodeInvalidStatus          ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation       ErrorCode = "INVALID_OPERATION"
	CodeInvalidStateTransition ErrorCode = "INVALID_STATE_TRANSITION"
)
