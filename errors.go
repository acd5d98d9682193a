package draftly

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes surfaced through the API.
const (
	ErrCodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	ErrCodeContractNotFound     = "CONTRACT_NOT_FOUND"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	ErrCodeInvalidFieldValue    = "INVALID_FIELD_VALUE"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeMalformedFieldList   = "MALFORMED_FIELD_LIST"
	ErrCodeRenderFailed         = "RENDER_FAILED"
	ErrCodeArchiveFailed        = "ARCHIVE_FAILED"
	ErrCodeStorageFailure       = "STORAGE_FAILURE"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DraftlyError is the unified error type for the contract pipeline.
type DraftlyError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Field      string         `json:"field,omitempty"`
	TemplateID int64          `json:"templateId,omitempty"`
	ContractID int64          `json:"contractId,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *DraftlyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *DraftlyError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a single detail to the error
func (e *DraftlyError) WithDetail(key string, value any) *DraftlyError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause adds a cause to the error
func (e *DraftlyError) WithCause(cause error) *DraftlyError {
	e.Cause = cause
	return e
}

// WithField adds field context to the error
func (e *DraftlyError) WithField(field string) *DraftlyError {
	e.Field = field
	return e
}

// WithContract adds contract context to the error
func (e *DraftlyError) WithContract(id int64) *DraftlyError {
	e.ContractID = id
	return e
}

// WithTemplate adds template context to the error
func (e *DraftlyError) WithTemplate(id int64) *DraftlyError {
	e.TemplateID = id
	return e
}

// ============================================================================
// Constructors
// ============================================================================

// NewDraftlyError creates a new DraftlyError
func NewDraftlyError(errorType ErrorType, code, message string) *DraftlyError {
	return &DraftlyError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewTemplateNotFoundError reports an unknown template id.
func NewTemplateNotFoundError(id int64) *DraftlyError {
	return &DraftlyError{
		Type:       ErrorTypeNotFound,
		Code:       ErrCodeTemplateNotFound,
		Message:    fmt.Sprintf("template %d not found", id),
		TemplateID: id,
	}
}

// NewContractNotFoundError reports an unknown contract id.
func NewContractNotFoundError(id int64) *DraftlyError {
	return &DraftlyError{
		Type:       ErrorTypeNotFound,
		Code:       ErrCodeContractNotFound,
		Message:    fmt.Sprintf("contract %d not found", id),
		ContractID: id,
	}
}

// NewFieldValidationError reports a single offending field.
func NewFieldValidationError(code, field, message string) *DraftlyError {
	return &DraftlyError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// NewInvalidStatusError reports an unknown contract status value.
func NewInvalidStatusError(status string) *DraftlyError {
	return &DraftlyError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("invalid contract status '%s'", status),
	}
}

// NewRenderError reports a failure of the external rasterizer. The stored
// contract data is unaffected; rendering is read-only over it.
func NewRenderError(message string, cause error) *DraftlyError {
	return &DraftlyError{
		Type:    ErrorTypeRender,
		Code:    ErrCodeRenderFailed,
		Message: message,
		Cause:   cause,
	}
}

// NewStorageError wraps a record store failure.
func NewStorageError(message string, cause error) *DraftlyError {
	return &DraftlyError{
		Type:    ErrorTypeStorage,
		Code:    ErrCodeStorageFailure,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *DraftlyError {
	return &DraftlyError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternalError,
		Message: message,
		Cause:   cause,
	}
}

// ============================================================================
// ValidationErrors
// ============================================================================

// ValidationErrors collects per-field validation failures so a single
// response can name every offending field id.
type ValidationErrors struct {
	Errors []*DraftlyError `json:"errors"`
}

// NewValidationErrors creates an empty ValidationErrors collection.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]*DraftlyError, 0)}
}

// Error implements the error interface for ValidationErrors
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}
	return fmt.Sprintf("multiple validation errors: %d errors found", len(ve.Errors))
}

// Add adds a new error to the collection
func (ve *ValidationErrors) Add(err *DraftlyError) {
	ve.Errors = append(ve.Errors, err)
}

// HasErrors returns true if there are any errors
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToError returns the collection as an error if non-empty, nil otherwise
func (ve *ValidationErrors) ToError() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Fields returns the offending field ids in order of detection.
func (ve *ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

// ============================================================================
// Error checking utilities
// ============================================================================

// IsNotFoundError checks if an error reports an unknown template or contract id
func IsNotFoundError(err error) bool {
	if de, ok := err.(*DraftlyError); ok {
		return de.Type == ErrorTypeNotFound
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if _, ok := err.(*ValidationErrors); ok {
		return true
	}
	if de, ok := err.(*DraftlyError); ok {
		return de.Type == ErrorTypeValidation
	}
	return false
}

// IsRenderError checks if an error came from the external rasterizer
func IsRenderError(err error) bool {
	if de, ok := err.(*DraftlyError); ok {
		return de.Type == ErrorTypeRender
	}
	return false
}

// IsStorageError checks if an error came from the record store
func IsStorageError(err error) bool {
	if de, ok := err.(*DraftlyError); ok {
		return de.Type == ErrorTypeStorage
	}
	return false
}
