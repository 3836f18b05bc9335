package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumoshop/storefront/internal/repository"
)

// CatalogHandler serves the public product catalog: products,
// categories and product reviews.
type CatalogHandler struct {
	Products   *repository.ProductRepo
	Categories *repository.CategoryRepo
	Reviews    *repository.ReviewRepo
}

func NewCatalogHandler(p *repository.ProductRepo, cat *repository.CategoryRepo, rev *repository.ReviewRepo) *CatalogHandler {
	return &CatalogHandler{Products: p, Categories: cat, Reviews: rev}
}

// ListProducts filters by ?category_id= and ?search=. category_id
// "all" or empty means every category.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	f := repository.Filter{
		CategoryID: c.QueryParam("category_id"),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns one product by ID, 404 when absent or
// soft-deleted.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// ListCategories returns every category.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cats)
}

// ListReviews returns a product's reviews, newest first.
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reviews, err := h.Reviews.ListByProduct(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reviews)
}

type postReviewReq struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
}

// PostReview stores a review and folds its rating into the
// product's running average.
func (h *CatalogHandler) PostReview(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req postReviewReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be 1-5"})
	}
	productID := req.ProductID

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	id, err := h.Reviews.Create(ctx, productID, uid, req.Rating, strings.TrimSpace(req.Content))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save review failed"})
	}
	if err := h.Products.ApplyReview(ctx, productID, req.Rating); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rating failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
