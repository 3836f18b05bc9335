package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumoshop/storefront/internal/repository"
)

// CartHandler serves the authenticated user's server-side cart.
type CartHandler struct {
	Carts    *repository.CartRepo
	Products *repository.ProductRepo
}

func NewCartHandler(carts *repository.CartRepo, products *repository.ProductRepo) *CartHandler {
	return &CartHandler{Carts: carts, Products: products}
}

type upsertCartReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Get lists the cart with current product names, prices and images
// joined in. An empty cart is an empty array, not null.
func (h *CartHandler) Get(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Carts.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Upsert sets the absolute quantity of one product. A quantity of
// zero or less removes the row instead of storing a dead line.
func (h *CartHandler) Upsert(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req upsertCartReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.Quantity <= 0 {
		if err := h.Carts.Delete(ctx, uid, req.ProductID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cart failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// Reject IDs that do not resolve to a live product.
	if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.Carts.Upsert(ctx, uid, req.ProductID, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cart failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove deletes one product line. Removing an absent line is a
// no-op success so retries stay safe.
func (h *CartHandler) Remove(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Carts.Delete(ctx, uid, productID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cart failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
