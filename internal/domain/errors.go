package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrMultipleFaces = &AppError{
		Code:       "MULTIPLE_FACES",
		Message:    "Multiple faces detected, please provide image with single face",
		StatusCode: 422,
	}

	ErrEmployeeExists = &AppError{
		Code:       "EMPLOYEE_ALREADY_EXISTS",
		Message:    "Employee already enrolled with this employee_id",
		StatusCode: 409,
	}

	ErrEmployeeNotFound = &AppError{
		Code:       "EMPLOYEE_NOT_FOUND",
		Message:    "Employee not found",
		StatusCode: 404,
	}

	ErrEmployeeInactive = &AppError{
		Code:       "EMPLOYEE_INACTIVE",
		Message:    "Employee account is inactive",
		StatusCode: 403,
	}

	ErrSessionNotFound = &AppError{
		Code:       "SESSION_NOT_FOUND",
		Message:    "Enrollment session not found",
		StatusCode: 404,
	}

	ErrSessionComplete = &AppError{
		Code:       "SESSION_COMPLETE",
		Message:    "Enrollment session already completed",
		StatusCode: 409,
	}

	ErrNoEnrolledFaces = &AppError{
		Code:       "NO_ENROLLED_FACES",
		Message:    "No enrolled employees found, enroll employees first",
		StatusCode: 404,
	}

	ErrAmbiguousMatch = &AppError{
		Code:       "AMBIGUOUS_MATCH",
		Message:    "Face not confidently matched, use manual check-in",
		StatusCode: 409,
	}

	ErrAlreadyCheckedIn = &AppError{
		Code:       "ALREADY_CHECKED_IN",
		Message:    "Employee already checked in recently",
		StatusCode: 409,
	}

	ErrEmbeddingFailed = &AppError{
		Code:       "EMBEDDING_FAILED",
		Message:    "Could not extract a face embedding from the captured image",
		StatusCode: 422,
	}
)
