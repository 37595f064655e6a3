package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// to logger, or to slog.Default() when logger is nil.
//
// Successful calls are logged at INFO. Errors the caller can fix (bad input,
// missing session, wrong call order, rate limiting) are logged at WARN and
// everything else at ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"session_id", GetSessionID(ctx), // empty on public procedures
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				log.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String(), "error", err)
			if clientFault(code) {
				log.WarnContext(ctx, "RPC rejected", attrs...)
			} else {
				log.ErrorContext(ctx, "RPC failed", attrs...)
			}
			return resp, err
		}
	}
}

func clientFault(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument,
		connect.CodeNotFound,
		connect.CodeFailedPrecondition,
		connect.CodeUnauthenticated,
		connect.CodeResourceExhausted,
		connect.CodeCanceled:
		return true
	}
	return false
}
