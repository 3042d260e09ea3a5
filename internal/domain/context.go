package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		logger = slog.Default()
	}

	return logger.(*slog.Logger)
}

const subjectContextKey contextKey = "subject"

// ContextWithSubject attaches the authenticated caller's subject to the context.
// The subject identifies an API caller, not a job-board user.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

func SubjectFromContext(ctx context.Context) string {
	subject := ctx.Value(subjectContextKey)
	if subject == nil {
		subject = ""
	}
	return subject.(string)
}

// AuthMethod identifies how a request was authenticated.
type AuthMethod string

const (
	AuthMethodAuth0         AuthMethod = "auth0"
	AuthMethodOperatorToken AuthMethod = "operator_token"
)

const authMethodContextKey contextKey = "auth_method"

func ContextWithAuthMethod(ctx context.Context, method AuthMethod) context.Context {
	return context.WithValue(ctx, authMethodContextKey, method)
}

func AuthMethodFromContext(ctx context.Context) AuthMethod {
	method, _ := ctx.Value(authMethodContextKey).(AuthMethod)
	return method
}
