package middleware

import (
	"context"
	"net/http"

	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/pkg/ctxutil"
)

type licenseValidator interface {
	Validate(ctx context.Context, key string) (*domain.License, error)
}

// LicenseAuth returns middleware that requires a valid license key in the
// X-License-Key header (falling back to the license_key query parameter for
// legacy clients). On success the license ID is stored in the request
// context; any rejection yields 401.
func LicenseAuth(validator licenseValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-License-Key")
			if key == "" {
				key = r.URL.Query().Get("license_key")
			}
			if key == "" {
				http.Error(w, "license key required", http.StatusUnauthorized)
				return
			}

			lic, err := validator.Validate(r.Context(), key)
			if err != nil {
				http.Error(w, "invalid license", http.StatusUnauthorized)
				return
			}

			ctx := ctxutil.WithLicenseID(r.Context(), lic.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
