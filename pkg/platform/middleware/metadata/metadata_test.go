package metadata

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"notarium/pkg/requestcontext"
)

func capture(m *Middleware, r *http.Request) (ip, ua string) {
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), r)
	return ip, ua
}

func TestExtractsRemoteAddrByDefault(t *testing.T) {
	m := NewMiddleware(nil)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("User-Agent", "test-agent")

	ip, ua := capture(m, r)
	assert.Equal(t, "203.0.113.7", ip)
	assert.Equal(t, "test-agent", ua)
}

func TestIgnoresXFFFromUntrustedProxy(t *testing.T) {
	m := NewMiddleware(nil)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")

	ip, _ := capture(m, r)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestTrustsXFFFromTrustedProxy(t *testing.T) {
	m := NewMiddleware(&Config{
		TrustedProxies: []netip.Prefix{netip.MustParsePrefix("203.0.113.0/24")},
	})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.7")

	ip, _ := capture(m, r)
	assert.Equal(t, "198.51.100.1", ip)
}

func TestIPv6RemoteAddr(t *testing.T) {
	m := NewMiddleware(nil)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "[2001:db8::1]:443"

	ip, _ := capture(m, r)
	assert.Equal(t, "2001:db8::1", ip)
}
