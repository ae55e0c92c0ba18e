package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	errSystemUser = fmt.Errorf("%w: la cuenta de sistema no se modifica", domain.ErrForbidden)
	errSelfManage = fmt.Errorf("%w: la cuenta propia no se administra desde aquí", domain.ErrForbidden)
)

// UserUseCase administración de usuarios (solo admin). La cuenta de sistema
// no aparece en listados ni acepta cambios; nadie se edita ni se borra a sí mismo.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (uc *UserUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.UserListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(items)},
	}, nil
}

// Create da de alta un usuario normal. Username repetido: ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserCreateRequest) (*dto.UserResponse, error) {
	if !validRole(in.Role) {
		return nil, domain.Invalid("role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Update cambia username y rol; el password solo si viene informado.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UserUpdateRequest) (*dto.UserResponse, error) {
	if !validRole(in.Role) {
		return nil, domain.Invalid("role")
	}
	u, err := uc.managed(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	u.Username = in.Username
	u.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Delete borra el usuario solo si no registró ventas, abonos ni gastos.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uc.managed(ctx, actorID, id); err != nil {
		return err
	}
	busy, err := uc.repo.HasActivity(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return domain.InUse("user", id)
	}
	return uc.repo.Delete(ctx, id)
}

// managed carga el usuario y aplica las guardas comunes a edición y borrado.
func (uc *UserUseCase) managed(ctx context.Context, actorID, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user", id)
	}
	if u.IsSystem {
		return nil, errSystemUser
	}
	if u.ID == actorID {
		return nil, errSelfManage
	}
	return u, nil
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleSeller
}
