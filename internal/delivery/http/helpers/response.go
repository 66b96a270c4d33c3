package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sharedcalendar/internal/domain"
)

// Error codes for API error responses. Scheduling rejections use the
// engine's reason tokens; transport-level failures use the generic codes.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"

	ErrCodeAccountNotFound   = "account-not-found"
	ErrCodeAccountExists     = "account-exists"
	ErrCodeInvalidType       = "invalid-type"
	ErrCodeInvalidPriority   = "invalid-priority"
	ErrCodeGuestForbidden    = "guest-forbidden"
	ErrCodeStaffHigh         = "staff-high-forbidden"
	ErrCodeEventExists       = "event-exists"
	ErrCodeBusyOnDate        = "busy-on-date"
	ErrCodeEventNotFound     = "event-not-found"
	ErrCodeAlreadyInvited    = "already-invited"
	ErrCodeAlreadyAttending  = "already-attending-conflict"
	ErrCodeInvalidResponse   = "invalid-response"
	ErrCodeNotInvited        = "not-invited"
	ErrCodeAlreadyResponded  = "already-responded"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and an APIResponse carrying data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError writes statusCode and an APIResponse carrying the error.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

type rejection struct {
	code   string
	status int
}

var rejections = []struct {
	err error
	rejection
}{
	{domain.ErrAccountNotFound, rejection{ErrCodeAccountNotFound, http.StatusNotFound}},
	{domain.ErrEventNotFound, rejection{ErrCodeEventNotFound, http.StatusNotFound}},
	{domain.ErrAccountExists, rejection{ErrCodeAccountExists, http.StatusConflict}},
	{domain.ErrEventExists, rejection{ErrCodeEventExists, http.StatusConflict}},
	{domain.ErrBusyOnDate, rejection{ErrCodeBusyOnDate, http.StatusConflict}},
	{domain.ErrAlreadyInvited, rejection{ErrCodeAlreadyInvited, http.StatusConflict}},
	{domain.ErrAlreadyAttending, rejection{ErrCodeAlreadyAttending, http.StatusConflict}},
	{domain.ErrAlreadyResponded, rejection{ErrCodeAlreadyResponded, http.StatusConflict}},
	{domain.ErrNotInvited, rejection{ErrCodeNotInvited, http.StatusConflict}},
	{domain.ErrUnknownAccountType, rejection{ErrCodeInvalidType, http.StatusBadRequest}},
	{domain.ErrUnknownPriority, rejection{ErrCodeInvalidPriority, http.StatusBadRequest}},
	{domain.ErrUnknownResponse, rejection{ErrCodeInvalidResponse, http.StatusBadRequest}},
	{domain.ErrGuestForbidden, rejection{ErrCodeGuestForbidden, http.StatusForbidden}},
	{domain.ErrStaffHighForbidden, rejection{ErrCodeStaffHigh, http.StatusForbidden}},
}

// WriteRejection maps an engine rejection to its reason token and HTTP
// status. Unrecognized errors become 500 internal_error.
func WriteRejection(w http.ResponseWriter, err error) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			WriteJSONError(w, r.status, r.code, err.Error())
			return
		}
	}
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
}
