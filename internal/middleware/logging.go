package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC, tagged with the caller's member,
// group and role when the request is authenticated. It must run inside the
// auth interceptor to see the identity.
//
// Client mistakes log at warn; internal and unknown failures log at error.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if id := GetIdentity(ctx); id != nil {
				attrs = append(attrs,
					slog.String("member_id", id.MemberID),
					slog.String("group_id", id.GroupID),
					slog.String("role", string(id.Role)),
				)
			}

			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				code := connect.CodeOf(err)
				level, msg = slog.LevelWarn, "RPC error"
				if code == connect.CodeInternal || code == connect.CodeUnknown {
					level = slog.LevelError
				}
				attrs = append(attrs, slog.String("code", code.String()), slog.Any("error", err))
			}

			logger.LogAttrs(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
