package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

type categoryService interface {
	Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	uc categoryService
}

func NewCategoryHandler(uc categoryService) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/categories (admin)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/categories/:id (admin)
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c, "category")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/categories/:id (admin). 409 si tiene productos.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "category")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
