package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/repository"
)

// ContactHandler stores messages from the contact form. No auth:
// guests can write in too.
type ContactHandler struct {
	Messages *repository.ContactRepo
}

func NewContactHandler(m *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Messages: m}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Content = strings.TrimSpace(req.Content)
	if req.Name == "" || req.Email == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/content required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Messages.Create(ctx, model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Content,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save message failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
