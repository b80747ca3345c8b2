package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// serviceLogger tags the request logger, or base outside a request, with the
// service and operation names followed by attrs.
func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = defaultLogger(base)
	}
	return logger.With(append([]any{"service", serviceName, "operation", operation}, attrs...)...)
}

// logResult writes the outcome of a service operation. Validation failures are
// expected user input problems and are logged at info level.
func logResult(ctx context.Context, logger *slog.Logger, err error, success, failure string, attrs ...any) {
	if err == nil {
		logger.InfoContext(ctx, success, attrs...)
		return
	}
	pairs := append([]any{"error", err, "error_kind", ErrorKind(err)}, attrs...)
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		logger.InfoContext(ctx, failure, pairs...)
		return
	}
	logger.ErrorContext(ctx, failure, pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, ErrSessionRevoked):
		return "session_revoked"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
