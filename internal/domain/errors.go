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

	ErrReportNotFound = &AppError{
		Code:       "REPORT_NOT_FOUND",
		Message:    "Report not found",
		StatusCode: 404,
	}

	ErrDraftNotFound = &AppError{
		Code:       "DRAFT_NOT_FOUND",
		Message:    "Pending submission not found or already resolved",
		StatusCode: 404,
	}

	ErrSavedSearchNotFound = &AppError{
		Code:       "SAVED_SEARCH_NOT_FOUND",
		Message:    "Saved search not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidStatus = &AppError{
		Code:       "INVALID_STATUS",
		Message:    "Status must be one of: lost, found, sighted, for_adoption, reunited",
		StatusCode: 422,
	}

	ErrInvalidSpecies = &AppError{
		Code:       "INVALID_SPECIES",
		Message:    "Species must be one of: dog, cat, other",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrVisionDisabled = &AppError{
		Code:       "VISION_DISABLED",
		Message:    "Photo analysis is not enabled",
		StatusCode: 403,
	}

	ErrReportAlreadyReunited = &AppError{
		Code:       "REPORT_ALREADY_REUNITED",
		Message:    "Report is already marked as reunited",
		StatusCode: 409,
	}
)
