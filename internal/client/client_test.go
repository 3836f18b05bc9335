package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumoshop/storefront/internal/model"
)

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.c", body["email"])

		json.NewEncoder(w).Encode(Session{
			User:   model.User{ID: 1, Email: "a@b.c", Level: "GOLD"},
			Access: TokenPart{Token: "tok-123"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "GOLD", s.User.Level)
	assert.Equal(t, "tok-123", c.token)
}

func TestAuthenticatedCallsCarryBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.CartItem{{ProductID: "p1", Quantity: 2, Price: 1000}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	items, err := c.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestUpsertAndRemoveCartItem(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.UpsertCartItem(context.Background(), "p1", 4))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/cart", gotPath)
	assert.Equal(t, "p1", gotBody["product_id"])
	assert.Equal(t, float64(4), gotBody["quantity"])

	require.NoError(t, c.RemoveCartItem(context.Background(), "p1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/cart/p1", gotPath)
}

func TestProductsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cat-1", r.URL.Query().Get("category_id"))
		assert.Equal(t, "phone", r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode([]model.Product{{ID: "p1", Price: 990}})
	}))
	defer srv.Close()

	ps, err := New(srv.URL).Products(context.Background(), "cat-1", "phone")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, int64(990), ps[0].Price)
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestCreateOrderReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Items    []OrderLine  `json:"items"`
			Shipping ShippingInfo `json:"shipping_info"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "Alice", body.Shipping.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(OrderReceipt{OrderID: "o-1", FinalAmount: 3800, PointsEarned: 3})
	}))
	defer srv.Close()

	rec, err := New(srv.URL).CreateOrder(context.Background(),
		[]OrderLine{{ProductID: "p1", Quantity: 2, Price: 1000}},
		ShippingInfo{Name: "Alice", Phone: "555", Address: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, "o-1", rec.OrderID)
	assert.Equal(t, int64(3800), rec.FinalAmount)
}
