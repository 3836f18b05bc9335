package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func ctxWithUserID(v any) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if v != nil {
		c.Set("user_id", v)
	}
	return c
}

func TestGetUserIDClaimShapes(t *testing.T) {
	// The JWT parser yields float64 for numeric claims; string and
	// uint64 cover tokens minted by tests and internal callers.
	for _, tc := range []struct {
		name  string
		claim any
		want  uint64
		ok    bool
	}{
		{"float64", float64(42), 42, true},
		{"string", "42", 42, true},
		{"uint64", uint64(42), 42, true},
		{"zero", float64(0), 0, false},
		{"garbage string", "forty-two", 0, false},
		{"absent", nil, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := getUserID(ctxWithUserID(tc.claim))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCartUpsertRequiresProductID(t *testing.T) {
	e := echo.New()
	h := NewCartHandler(nil, nil) // validation fails before any repo call

	req := httptest.NewRequest(http.MethodPost, "/api/cart",
		strings.NewReader(`{"quantity": 3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1))

	assert.NoError(t, h.Upsert(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderCreateRejectsEmptyAndUnauthed(t *testing.T) {
	e := echo.New()
	h := NewOrderHandler(nil, nil, nil, nil)

	// No identity in context.
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	assert.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authed but empty item list.
	req = httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[],"shipping_info":{"name":"a","phone":"b","address":"c"}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1))
	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
