package ctxutil

import "context"

type ctxKey string

const (
	licenseIDKey ctxKey = "license_id"
	requestIDKey ctxKey = "request_id"
)

// WithLicenseID stores the authenticated license ID in the context.
func WithLicenseID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, licenseIDKey, id)
}

// LicenseIDFromCtx extracts the license ID from the context.
// Returns 0 and false if the value is missing, zero, or the wrong type.
func LicenseIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(licenseIDKey).(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
