package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventregistration/internal/domain"
)

// Error names used in ErrorBody.Name.
const (
	ErrNameValidation           = "ValidationError"
	ErrNameUnauthorized         = "UnauthorizedError"
	ErrNameAlreadyRegistered    = "RegistrantAlreadyRegisteredError"
	ErrNamePaymentGateway       = "PaymentGatewayError"
	ErrNameChargeOutcomeUnknown = "ChargeOutcomeUnknownError"
	ErrNameMethodNotImplemented = "MethodNotImplementedError"
	ErrNameResourceNotExists    = "ResourceNotExistsError"
	ErrNameInternal             = "InternalServerError"
)

// ErrorBody is the JSON body of every error response.
// swagger:model ErrorBody
type ErrorBody struct {
	Name    string                      `json:"name"`
	Code    int                         `json:"code"`
	Message string                      `json:"message"`
	Fields  []string                    `json:"fields,omitempty"`
	Details []domain.GatewayErrorDetail `json:"details,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorBody with the given status, name and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, name, message string) {
	WriteJSON(w, statusCode, ErrorBody{Name: name, Code: statusCode, Message: message})
}

// WriteDomainError maps err onto a status code and error body. Unclassified
// errors are logged and reported as 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		notFound   *domain.NotFoundError
		exists     *domain.AlreadyExistsError
		registered *domain.AlreadyRegisteredError
		gwErr      *domain.GatewayError
	)
	switch {
	case errors.As(err, &notFound):
		WriteJSONError(w, http.StatusNotFound, notFound.Kind+"NotFoundError", notFound.Error())
	case errors.As(err, &exists):
		WriteJSONError(w, http.StatusConflict, exists.Kind+"AlreadyExistsError", exists.Error())
	case errors.As(err, &registered):
		WriteJSONError(w, http.StatusConflict, ErrNameAlreadyRegistered, registered.Error())
	case errors.As(err, &gwErr):
		status := gwErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		WriteJSON(w, status, ErrorBody{
			Name:    ErrNamePaymentGateway,
			Code:    status,
			Message: gwErr.Error(),
			Details: gwErr.Errors,
		})
	case errors.Is(err, domain.ErrChargeOutcomeUnknown):
		logger.WarnContext(r.Context(), "charge outcome unknown", "path", r.URL.Path, "err", err)
		WriteJSONError(w, http.StatusGatewayTimeout, ErrNameChargeOutcomeUnknown,
			"The payment provider did not confirm the charge. It will not be retried automatically; do not resubmit the same card source.")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrNameValidation, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrNameInternal, "internal server error")
	}
}

// MethodNotImplemented answers methods a resource does not support.
func MethodNotImplemented(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, http.StatusNotImplemented, ErrNameMethodNotImplemented,
		fmt.Sprintf("Resource %s exists but has no method %s.", r.URL.RequestURI(), r.Method))
}

// ResourceNotExists answers paths outside every resource.
func ResourceNotExists(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, http.StatusNotFound, ErrNameResourceNotExists,
		fmt.Sprintf("%s %s is a valid endpoint, but the resource does not exist.", r.Method, r.URL.RequestURI()))
}
