package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCycles(t *testing.T) {
	assert.Equal(t, Light, System.Next())
	assert.Equal(t, Dark, Light.Next())
	assert.Equal(t, System, Dark.Next())
}

func TestParse(t *testing.T) {
	assert.Equal(t, Dark, Parse(" DARK "))
	assert.Equal(t, Light, Parse("light"))
	assert.Equal(t, System, Parse("sepia"))
	assert.Equal(t, System, Parse(""))
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, Dark)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, Dark, FromRequest(req))
	assert.Equal(t, System, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestSetSystemClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, System)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "/tr/projeler/su-gunlugu/", SafeReturn("/tr/projeler/su-gunlugu/"))
	assert.Equal(t, "/", SafeReturn("https://evil.example"))
	assert.Equal(t, "/", SafeReturn("//evil.example"))
	assert.Equal(t, "/", SafeReturn(`/\evil.example`))
	assert.Equal(t, "/", SafeReturn(""))
}
