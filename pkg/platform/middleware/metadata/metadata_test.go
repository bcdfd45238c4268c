package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fundguard/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	newReq := func(remoteAddr string, headers map[string]string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remoteAddr
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return r
	}

	t.Run("x-forwarded-for single", func(t *testing.T) {
		r := newReq("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7"})
		assert.Equal(t, "203.0.113.7", ClientIPFromRequest(r))
	})

	t.Run("x-forwarded-for chain takes first", func(t *testing.T) {
		r := newReq("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"})
		assert.Equal(t, "203.0.113.7", ClientIPFromRequest(r))
	})

	t.Run("x-real-ip fallback", func(t *testing.T) {
		r := newReq("10.0.0.1:1234", map[string]string{"X-Real-IP": "198.51.100.4"})
		assert.Equal(t, "198.51.100.4", ClientIPFromRequest(r))
	})

	t.Run("remote addr strips port", func(t *testing.T) {
		r := newReq("192.0.2.9:4321", nil)
		assert.Equal(t, "192.0.2.9", ClientIPFromRequest(r))
	})

	t.Run("ipv6 remote addr", func(t *testing.T) {
		r := newReq("[::1]:4321", nil)
		assert.Equal(t, "::1", ClientIPFromRequest(r))
	})
}

func TestNormalizeUserAgent(t *testing.T) {
	t.Run("browser reduced to name version os", func(t *testing.T) {
		const chrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		got := NormalizeUserAgent(chrome)
		assert.Contains(t, got, "Chrome/120")
		assert.Contains(t, got, "Windows")
	})

	t.Run("bot labeled", func(t *testing.T) {
		const crawler = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
		assert.Equal(t, "bot", NormalizeUserAgent(crawler))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeUserAgent(""))
	})
}

func TestClientMetadataMiddleware(t *testing.T) {
	var gotIP, gotUA string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")

	ClientMetadata(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.7", gotIP)
	assert.Equal(t, "bot", gotUA)
}
