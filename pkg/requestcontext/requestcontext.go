// Package requestcontext carries per-request metadata (request ID, client IP,
// user agent, device display name, authenticated actor) through context so
// handlers, services, and the audit recorder can attribute their work without
// threading extra parameters everywhere.
package requestcontext

import "context"

type contextKey int

const (
	keyRequestID contextKey = iota
	keyClientIP
	keyUserAgent
	keyDeviceName
	keyActorEmail
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// RequestID returns the request ID from the context, or "" if unset.
func RequestID(ctx context.Context) string {
	return stringValue(ctx, keyRequestID)
}

// WithClientMetadata stores the client IP and user agent in the context.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyClientIP, ip)
	return context.WithValue(ctx, keyUserAgent, userAgent)
}

// ClientIP returns the client IP from the context, or "" if unset.
func ClientIP(ctx context.Context) string {
	return stringValue(ctx, keyClientIP)
}

// UserAgent returns the raw User-Agent header from the context, or "" if unset.
func UserAgent(ctx context.Context) string {
	return stringValue(ctx, keyUserAgent)
}

// WithDeviceName stores a human-readable device description ("Chrome on macOS").
func WithDeviceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyDeviceName, name)
}

// DeviceName returns the device description from the context, or "" if unset.
func DeviceName(ctx context.Context) string {
	return stringValue(ctx, keyDeviceName)
}

// WithActorEmail stores the authenticated caller's email for audit attribution.
func WithActorEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, keyActorEmail, email)
}

// ActorEmail returns the authenticated caller's email, or "" if unset.
func ActorEmail(ctx context.Context) string {
	return stringValue(ctx, keyActorEmail)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
