package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/repository"
	"github.com/lumoshop/storefront/internal/utils"
)

// AdminHandler groups the ADMIN-only management endpoints.
type AdminHandler struct {
	Orders   *repository.OrderRepo
	Products *repository.ProductRepo
	Users    *repository.UserRepo
}

func NewAdminHandler(o *repository.OrderRepo, p *repository.ProductRepo, u *repository.UserRepo) *AdminHandler {
	return &AdminHandler{Orders: o, Products: p, Users: u}
}

// ListOrders returns every order across all users.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, orders)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

var validStatuses = map[string]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusShipping:  true,
	model.OrderStatusCompleted: true,
	model.OrderStatusCancelled: true,
}

// UpdateOrderStatus sets an order's status directly. Completing an
// order this way does not credit points; only the customer's own
// receipt confirmation does.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !validStatuses[req.Status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Orders.UpdateStatus(ctx, c.Param("id"), req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type productReq struct {
	CategoryID  string            `json:"category_id"`
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Stock       int               `json:"stock"`
	Images      []string          `json:"images"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
}

// CreateProduct adds a catalog entry with a generated ID.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required, price must be non-negative"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := model.Product{
		ID:          utils.NewSUID(),
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Description: req.Description,
		Specs:       req.Specs,
	}
	if err := h.Products.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct replaces the editable fields of one product.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p.CategoryID = req.CategoryID
	p.Name = strings.TrimSpace(req.Name)
	p.Price = req.Price
	p.Stock = req.Stock
	p.Images = req.Images
	p.Description = req.Description
	p.Specs = req.Specs
	if err := h.Products.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct soft-deletes so existing order lines keep their
// product reference.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.SoftDelete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete product failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers returns every registered account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}
