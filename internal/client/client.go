// Package client is a typed HTTP client for the storefront REST
// API. Every call takes a context, decodes JSON into the domain
// models and maps non-2xx responses to *APIError. The zero-value
// client is not usable; construct one with New.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumoshop/storefront/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int    // HTTP status code
	Message string // server-provided error message, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: http %d", e.Status)
	}
	return fmt.Sprintf("api: http %d: %s", e.Status, e.Message)
}

// Client calls the storefront API at a fixed base URL. Safe for
// concurrent use once the session token is set.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// New returns a client for the API rooted at base (no trailing
// slash needed).
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer access token used on
// authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// Session is the token pair returned by login and register.
type Session struct {
	User    model.User `json:"user"`
	Access  TokenPart  `json:"access"`
	Refresh TokenPart  `json:"refresh"`
}

// TokenPart is one token plus its expiry.
type TokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login exchanges credentials for a session and installs the
// access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Access.Token
	return &s, nil
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Access.Token
	return &s, nil
}

// Me fetches the current session's user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchCart returns the authenticated session's remote cart.
func (c *Client) FetchCart(ctx context.Context) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertCartItem sets the remote quantity for a product. The
// server treats quantity <= 0 as a delete.
func (c *Client) UpsertCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/api/cart", body, nil)
}

// RemoveCartItem deletes one product from the remote cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(productID), nil, nil)
}

// Products fetches the catalog, optionally filtered by category
// and a name search term (either may be empty).
func (c *Client) Products(ctx context.Context, categoryID, search string) ([]model.Product, error) {
	q := url.Values{}
	if categoryID != "" {
		q.Set("category_id", categoryID)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var ps []model.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// Product fetches one catalog entry by ID.
func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories fetches the category set.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// Reviews fetches the reviews of one product, newest first.
func (c *Client) Reviews(ctx context.Context, productID string) ([]model.Review, error) {
	var rs []model.Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews/"+url.PathEscape(productID), nil, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// PostReview submits a review for a product.
func (c *Client) PostReview(ctx context.Context, productID string, rating int, content string) error {
	body := map[string]any{"product_id": productID, "rating": rating, "content": content}
	return c.do(ctx, http.MethodPost, "/api/reviews", body, nil)
}

// ShippingInfo is the delivery block of an order request.
type ShippingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// OrderLine is one cart line submitted at checkout, with the
// client-side price snapshot. The server recomputes all amounts
// and does not trust these prices for charging.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// OrderReceipt is the server's answer to a successful checkout.
type OrderReceipt struct {
	OrderID        string `json:"order_id"`
	FinalAmount    int64  `json:"final_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	PointsEarned   int64  `json:"points_earned"`
}

// CreateOrder submits the cart as an order. On success the server
// has already cleared the remote cart.
func (c *Client) CreateOrder(ctx context.Context, items []OrderLine, ship ShippingInfo) (*OrderReceipt, error) {
	body := map[string]any{"items": items, "shipping_info": ship}
	var rec OrderReceipt
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// MyOrders fetches the session user's order history, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var os []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", nil, &os); err != nil {
		return nil, err
	}
	return os, nil
}

// ConfirmReceipt marks a shipping order as received, which
// credits the order's loyalty points.
func (c *Client) ConfirmReceipt(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/receive", nil, nil)
}

// do runs one request/response cycle. in (when non-nil) is JSON
// encoded as the body; out (when non-nil) receives the decoded
// response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Message: readAPIMessage(res.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// readAPIMessage pulls the "error" field out of an error body,
// falling back to the raw text when the body is not JSON.
func readAPIMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
