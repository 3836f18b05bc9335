package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumoshop/storefront/internal/loyalty"
	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/pricing"
	"github.com/lumoshop/storefront/internal/queue"
	"github.com/lumoshop/storefront/internal/repository"
	queue_publisher "github.com/lumoshop/storefront/internal/service"
)

// OrderHandler serves checkout and order history.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Carts    *repository.CartRepo
	Products *repository.ProductRepo
	Users    *repository.UserRepo
}

func NewOrderHandler(o *repository.OrderRepo, c *repository.CartRepo, p *repository.ProductRepo, u *repository.UserRepo) *OrderHandler {
	return &OrderHandler{Orders: o, Carts: c, Products: p, Users: u}
}

type orderLineReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // client's display price, ignored for totals
}

type shippingInfoReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

type createOrderReq struct {
	Items        []orderLineReq  `json:"items"`
	ShippingInfo shippingInfoReq `json:"shipping_info"`
}

type orderReceipt struct {
	OrderID        string `json:"order_id"`
	TotalAmount    int64  `json:"total_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
	PointsEarned   int64  `json:"points_earned"`
}

// Create places an order. Prices and totals are recomputed from
// the products table; the client-side amounts are display-only and
// never trusted. Clears the server cart in the same transaction.
func (h *OrderHandler) Create(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order has no items"})
	}
	if req.ShippingInfo.Name == "" || req.ShippingInfo.Phone == "" || req.ShippingInfo.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shipping name/phone/address required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Reprice every line from the catalog.
	var cart []model.CartItem
	var items []model.OrderItem
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be at least 1"})
		}
		p, err := h.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found: " + line.ProductID})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		// Bulk tier discounts are folded into the frozen line price.
		quote := pricing.QuoteLine(p.Price, line.Quantity, pricing.DefaultBulkTiers)
		cart = append(cart, model.CartItem{
			ProductID: p.ID,
			Price:     quote.DiscountedUnitPrice,
			Quantity:  line.Quantity,
		})
		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     quote.DiscountedUnitPrice,
		})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	totals := pricing.CartTotals(cart, loyalty.DiscountFor(u.Level, loyalty.DefaultTable))

	order := model.Order{
		UserID:          uid,
		TotalAmount:     totals.Subtotal,
		DiscountAmount:  totals.DiscountAmount,
		FinalAmount:     totals.Total,
		PointsEarned:    totals.Total / 1000,
		ShippingName:    req.ShippingInfo.Name,
		ShippingPhone:   req.ShippingInfo.Phone,
		ShippingAddress: req.ShippingInfo.Address,
		Note:            req.ShippingInfo.Note,
	}
	created, err := h.Orders.Create(ctx, order, items, h.Carts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	return c.JSON(http.StatusCreated, orderReceipt{
		OrderID:        created.ID,
		TotalAmount:    created.TotalAmount,
		DiscountAmount: created.DiscountAmount,
		FinalAmount:    created.FinalAmount,
		PointsEarned:   created.PointsEarned,
	})
}

// ListMine returns the caller's orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, orders)
}

// ConfirmReceipt marks a shipping order as received, credits its
// points and publishes an order.completed event. The publish is
// best-effort: a broker outage never fails the confirmation.
func (h *OrderHandler) ConfirmReceipt(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	order, err := h.Orders.ConfirmReceipt(ctx, orderID, uid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "order is not shipping"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
		}
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("order: reload user %d after receipt failed: %v", uid, err)
	}

	ev := queue.OrderCompletedEvent{
		OrderID:        order.ID,
		UserID:         uid,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		FinalAmount:    order.FinalAmount,
		PointsEarned:   order.PointsEarned,
		NewLevel:       u.Level,
		CompletedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishOrderCompleted(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, order)
}
