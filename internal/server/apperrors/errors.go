// Package apperrors defines the application error taxonomy surfaced to API
// clients: every expected failure carries a name, a user-facing message,
// a suggested action, and the HTTP status it maps to.
package apperrors

import "net/http"

// AppError is an expected domain failure. It marshals directly as the
// API error body.
type AppError struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	Action     string `json:"action"`
	StatusCode int    `json:"status_code"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports client input rejected by a business rule,
// such as a duplicate username or email.
func NewValidationError(message, action string) *AppError {
	return &AppError{
		Name:       "ValidationError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError reports a missing resource. Callers deliberately reuse
// one message for distinct sub-cases (unknown, expired, already used) so
// the response does not leak resource state.
func NewNotFoundError(message, action string) *AppError {
	return &AppError{
		Name:       "NotFoundError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError reports failed authentication. The same message is
// used whether the email is unknown or the password is wrong.
func NewUnauthorizedError(message, action string) *AppError {
	return &AppError{
		Name:       "UnauthorizedError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewMethodNotAllowedError reports an unsupported verb on a known route.
func NewMethodNotAllowedError() *AppError {
	return &AppError{
		Name:       "MethodNotAllowedError",
		Message:    "Método não permitido para este endpoint.",
		Action:     "Verifique se o método HTTP enviado é válido para este endpoint.",
		StatusCode: http.StatusMethodNotAllowed,
	}
}

// NewServiceUnavailableError reports a dependency that could not be
// reached, such as the database during a status check.
func NewServiceUnavailableError() *AppError {
	return &AppError{
		Name:       "ServiceUnavailableError",
		Message:    "Não foi possível verificar o status dos serviços.",
		Action:     "Tente novamente mais tarde.",
		StatusCode: http.StatusServiceUnavailable,
	}
}

// NewInternalServerError is the generic body for unexpected failures.
// Details stay in the logs, never in the response.
func NewInternalServerError() *AppError {
	return &AppError{
		Name:       "InternalServerError",
		Message:    "Um erro interno não esperado aconteceu.",
		Action:     "Entre em contato com o suporte.",
		StatusCode: http.StatusInternalServerError,
	}
}
