// Package errors provides standardized error handling for the lane pipeline's
// BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Hard failures: abort the orchestrated query, surface one user-facing
	// message with a retry action.
	ErrCodeLaneValidationFailed     ErrorCode = "LANE_VALIDATION_FAILED"
	ErrCodeLocationResolutionFailed ErrorCode = "LOCATION_RESOLUTION_FAILED"
	ErrCodeRateQueryFailed          ErrorCode = "RATE_QUERY_FAILED"
	ErrCodeRateQueryTimeout         ErrorCode = "RATE_QUERY_TIMEOUT"

	// Soft failures: attached to outcomes alongside partial data; must never
	// prevent rendering of that data.
	ErrCodeCarrierNotFound ErrorCode = "CARRIER_NOT_FOUND"
	ErrCodeEmptyRateResult ErrorCode = "EMPTY_RATE_RESULT"

	// Per-source failures: the readiness slot simply stays unavailable.
	ErrCodeSpotMatrixFailed     ErrorCode = "SPOT_MATRIX_FAILED"
	ErrCodeHistoryQueryFailed   ErrorCode = "HISTORY_QUERY_FAILED"
	ErrCodeHistoryQueryTimeout  ErrorCode = "HISTORY_QUERY_TIMEOUT"
	ErrCodeInvalidQueryType     ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeInsightsQueryFailed  ErrorCode = "INSIGHTS_QUERY_FAILED"
	ErrCodeInsightsQueryTimeout ErrorCode = "INSIGHTS_QUERY_TIMEOUT"

	ErrCodeRecommendationFailed   ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodePreferenceStoreFailed  ErrorCode = "PREFERENCE_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Soft      bool                   `json:"soft"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewLaneValidationError creates a non-retryable validation error for a lane
// missing required fields (e.g. no city pair).
func NewLaneValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLaneValidationFailed,
		Message:   "Required lane fields missing",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationResolutionError creates a non-retryable error for a city that
// cannot be parsed or a lookup that returned no identifiers. Phase 1 failures
// abort the whole rate query with no partial data.
func NewLocationResolutionError(city, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationResolutionFailed,
		Message:   fmt.Sprintf("Cannot resolve location %q", city),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateQueryError creates a retryable upstream rate-service error.
func NewRateQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateQueryFailed,
		Message:   "Rate quote service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateQueryTimeoutError creates a retryable timeout error.
func NewRateQueryTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRateQueryTimeout,
		Message:   "Rate quote service timeout",
		Details:   "call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierNotFoundError creates a soft error: the named preferred carrier
// has no matching rate record. Any cheapest result is still returned.
func NewCarrierNotFoundError(carrier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierNotFound,
		Message:   fmt.Sprintf("No rate option matched preferred carrier %q", carrier),
		Retryable: false,
		Soft:      true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyRateResultError creates a soft error for a query with zero options.
func NewEmptyRateResultError(lane string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyRateResult,
		Message:   fmt.Sprintf("No rate options returned for lane %q", lane),
		Retryable: false,
		Soft:      true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpotMatrixError creates a retryable spot-rate-service error.
func NewSpotMatrixError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpotMatrixFailed,
		Message:   "Spot rate matrix service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryError creates a retryable lane-history database error.
func NewHistoryQueryError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Lane history query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryTimeoutError creates a retryable query timeout error.
func NewHistoryQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryTimeout,
		Message:   "Lane history query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable unknown-query-type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unsupported query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsightsQueryError creates a retryable chat-insights search error.
func NewInsightsQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsightsQueryFailed,
		Message:   "Chat insights search error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecommendationError creates a retryable recommendation-service error.
func NewRecommendationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationFailed,
		Message:   "Recommendation service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreferenceStoreError creates a retryable preference-store error.
func NewPreferenceStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePreferenceStoreFailed,
		Message:   "User preference store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeRateQueryFailed,
		ErrCodeSpotMatrixFailed,
		ErrCodeHistoryQueryFailed,
		ErrCodeInsightsQueryFailed,
		ErrCodeRecommendationFailed,
		ErrCodeNotificationSendFailed,
		ErrCodePreferenceStoreFailed:
		return 3 // Retryable technical errors

	case ErrCodeRateQueryTimeout,
		ErrCodeHistoryQueryTimeout,
		ErrCodeInsightsQueryTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Validation / soft errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError.
// Soft errors never reach the engine; callers attach them to outcomes instead.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsSoft reports whether the error is a partial-success annotation rather
// than a failure.
func IsSoft(err error) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Soft
}
