package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byName map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byName[u.Username]; ok {
		return domain.ErrDuplicate
	}
	m.byName[u.Username] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.byName[username], nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Update(context.Context, *entity.User) error             { return nil }
func (m *memUsers) Delete(context.Context, string) error                   { return nil }
func (m *memUsers) HasActivity(context.Context, string) (bool, error)      { return false, nil }

func newUC() *AuthUseCase {
	return NewAuthUseCase(&memUsers{byName: map[string]*entity.User{}}, JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "t"})
}

func TestLogin_OK(t *testing.T) {
	uc := newUC()
	ctx := context.Background()
	_, err := uc.EnsureUser(ctx, "vendedor", "clave123", entity.RoleSeller, false)
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "vendedor", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, resp.User.Role)

	claims, err := jwt.Parse("s", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newUC()
	ctx := context.Background()
	_, err := uc.EnsureUser(ctx, "admin", "admin123", entity.RoleAdmin, false)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestEnsureUser_Idempotent(t *testing.T) {
	uc := newUC()
	ctx := context.Background()
	a, err := uc.EnsureUser(ctx, "admin", "admin123", entity.RoleAdmin, true)
	require.NoError(t, err)
	b, err := uc.EnsureUser(ctx, "admin", "otra", entity.RoleAdmin, true)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = uc.EnsureUser(ctx, "x", "y", "bodeguero", false)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
