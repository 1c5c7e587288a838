package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "validation"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindNotFound           Kind = "not_found"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindInternal           Kind = "internal"
)

const (
	MsgNameEmailRequired = "Name and email are required"
	MsgEmailExists       = "Email already exists"
	MsgCandidateNotFound = "Candidate not found"
	MsgFeedbackNotFound  = "Feedback not found"
	MsgRatingRange       = "Rating must be between 1 and 5"
	MsgCommentRequired   = "Comment is required"
	MsgPDFOnly           = "Only PDF files are allowed"
	MsgResumeTooLarge    = "Resume exceeds maximum size"
	MsgInvalidBody       = "Invalid request body"
	MsgServerError       = "Server Error"
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func DuplicateEmail(err error) *AppError {
	return New(KindDuplicateEmail, http.StatusBadRequest, MsgEmailExists, err)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// StorageUnavailable reports that the database could not be reached. The HTTP
// contract still answers 500 for it; the kind only differs for logs and metrics.
func StorageUnavailable(err error) *AppError {
	return New(KindStorageUnavailable, http.StatusInternalServerError, MsgServerError, err)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, MsgServerError, err)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
