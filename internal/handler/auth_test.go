package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/lumoshop/storefront/internal/config"
)

// Logout identifies the session by its refresh token alone; a
// request without one is rejected up front, before any lookup.
func TestLogoutRequiresRefreshToken(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(config.Config{}, nil, nil)

	for _, body := range []string{`{}`, `{"refresh_token":"  "}`, `{"all":true}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.Logout(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(config.Config{}, nil, nil)

	for _, body := range []string{
		`{"email":"not-an-email","password":"pw"}`,
		`{"email":"@nolocal.example","password":"pw"}`,
		`{"email":"","password":"pw"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.Register(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}
