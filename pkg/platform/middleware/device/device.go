// Package device derives a human-readable device description from the
// User-Agent header so audit entries can say "Chrome on macOS" instead of a
// raw UA string.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"notarium/pkg/requestcontext"
)

// Describe extracts a display name from a User-Agent string.
// Returns format: "Browser on OS" (e.g., "Chrome on Mac OS X", "Safari on iOS").
func Describe(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	if browser == "" {
		browser = "Unknown Browser"
	}

	os := strings.TrimSpace(ua.OSInfo().Name)
	if os == "" {
		return browser
	}

	return browser + " on " + os
}

// Middleware resolves the device description from the User-Agent already
// placed in context by the metadata middleware, so it must be registered
// after metadata.Middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ua := requestcontext.UserAgent(ctx); ua != "" {
			ctx = requestcontext.WithDeviceName(ctx, Describe(ua))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
