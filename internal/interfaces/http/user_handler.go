package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

type userService interface {
	List(ctx context.Context, in dto.PageRequest) (*dto.UserListResponse, error)
	Create(ctx context.Context, in dto.UserCreateRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, actorID, id string, in dto.UserUpdateRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

// UserHandler administración de usuarios (admin).
type UserHandler struct {
	uc userService
}

func NewUserHandler(uc userService) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios (sin cuentas de sistema)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.PageRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/users (admin). 409 si el username existe.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.UserCreateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/users/:id (admin). 403 para la cuenta de sistema o la propia.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UserUpdateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c, "user")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/users/:id (admin). 409 si el usuario tiene movimientos.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "user")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
