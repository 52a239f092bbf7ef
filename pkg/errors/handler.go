package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// wireError is the JSON error shape clients receive: {"error": "..."}.
// The richer AppError detail stays in the logs.
type wireError struct {
	Error string `json:"error"`
}

// ErrorHandler maps application errors onto HTTP responses.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle writes the HTTP response for err, preserving the taxonomy's status
// code. Operator-facing kinds (configuration, gateway, model output) are
// logged in full but reported to the client as a generic message.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr := GetAppError(err); appErr != nil {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		message = h.clientMessage(appErr)
		h.logError(r, appErr, status)
	} else {
		h.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	}

	h.sendJSON(w, status, wireError{Error: message})
}

// HandleStatus sends an error response with a specific status and message.
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.logger.Warn("HTTP error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("message", message),
	)
	h.sendJSON(w, status, wireError{Error: message})
}

// clientMessage decides what the client is told. Caller-fault and
// upstream-billing kinds pass through; everything operator-facing does not
// leak configuration or raw model output.
func (h *ErrorHandler) clientMessage(err *AppError) string {
	switch err.Type {
	case ErrorTypeInvalidInput, ErrorTypeNotFound, ErrorTypeUnauthorized, ErrorTypeForbidden:
		return err.Message
	case ErrorTypeRateLimited, ErrorTypePaymentRequired:
		return err.Message
	case ErrorTypeGateway, ErrorTypeEmptyCompletion, ErrorTypeMalformedOutput,
		ErrorTypeValidation, ErrorTypeConfiguration:
		return "Failed to generate mind map"
	default:
		return "Internal server error"
	}
}

func (h *ErrorHandler) logError(r *http.Request, err *AppError, status int) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}
	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}
	if err.Details != nil {
		fields = append(fields, zap.Any("details", err.Details))
	}

	switch {
	case status >= 500:
		h.logger.Error(err.Message, fields...)
	case status >= 400:
		h.logger.Warn(err.Message, fields...)
	default:
		h.logger.Info(err.Message, fields...)
	}
}

func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}
