package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки домена рекрутинга.
*/

// ErrNotFound - "не найдено" (404) для произвольного домена
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - невалидная операция (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - невалидный статус (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInvalidStateTransition - переход жизненного цикла запрещен (400)
func ErrInvalidStateTransition(domain, message string) *AppError {
	return New(CodeInvalidStateTransition, domain, message, http.StatusBadRequest)
}

// ErrInvalidID - id не является UUID
func ErrInvalidID(param string) *AppError {
	return New(CodeValidationFailed, "request", "Invalid id format: "+param+" must be a UUID", http.StatusBadRequest)
}

// --- Job positions ---

var ErrJobPositionNotFound = ErrNotFound(nil, "job_position", "Job position not found")

var ErrJobPositionClosed = New(
	CodeInvalidStatus,
	"job_position",
	"Job position is closed and does not accept applications",
	http.StatusBadRequest,
)

var ErrInvalidSalaryRange = New(
	CodeValidationFailed,
	"job_position",
	"salaryMax must be greater than or equal to salaryMin",
	http.StatusBadRequest,
)

// --- Candidate profiles ---

var ErrCandidateNotFound = ErrNotFound(nil, "candidate_profile", "Candidate profile not found")

var ErrCandidateEmailExists = New(
	CodeConflict,
	"candidate_profile",
	"A candidate with this email already exists",
	http.StatusConflict,
)

var ErrCandidatePhoneExists = New(
	CodeConflict,
	"candidate_profile",
	"A candidate with this phone already exists",
	http.StatusConflict,
)

// --- Applications ---

var ErrApplicationNotFound = ErrNotFound(nil, "application", "Application not found")

var ErrDuplicateApplication = New(
	CodeConflict,
	"application",
	"Candidate has already applied for this job position",
	http.StatusConflict,
)

var ErrTerminalApplication = ErrInvalidStateTransition(
	"application",
	"Application is already in a terminal state (HIRED or REJECTED) and its status cannot change",
)

// ErrApplicationModified - статус заявки поменялся между чтением и записью
var ErrApplicationModified = ErrConflict(
	nil,
	"application",
	"Application status was changed by another request, reload it and retry",
)

var ErrRejectionReasonRequired = New(
	CodeValidationFailed,
	"application",
	"rejectionReason is required when status is REJECTED",
	http.StatusBadRequest,
)

// --- Interviews ---

var ErrInterviewNotFound = ErrNotFound(nil, "interview", "Interview not found")

var ErrApplicationJobMismatch = ErrInvalidOperation(
	"interview",
	"Application does not belong to the given job position",
)

var ErrApplicationNotSchedulable = New(
	CodeInvalidStatus,
	"interview",
	"Interview cannot be scheduled for an application in its current status",
	http.StatusBadRequest,
)

var ErrInvalidInterviewTime = New(
	CodeValidationFailed,
	"interview",
	"endTime must be later than startTime (HH:MM)",
	http.StatusBadRequest,
)

var ErrNoInterviewers = New(
	CodeValidationFailed,
	"interview",
	"At least one interviewer is required",
	http.StatusBadRequest,
)
