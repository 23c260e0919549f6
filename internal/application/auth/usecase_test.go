package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consigna-pro/internal/application/auth"
	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
)

type userStore struct{ byEmail map[string]*entity.User }

func newUserStore() *userStore { return &userStore{byEmail: map[string]*entity.User{}} }

func (s *userStore) Create(u *entity.User) error { s.byEmail[u.Email] = u; return nil }
func (s *userStore) GetByID(id string) (*entity.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userStore) GetByEmail(email string) (*entity.User, error) { return s.byEmail[email], nil }
func (s *userStore) Update(u *entity.User) error                   { s.byEmail[u.Email] = u; return nil }
func (s *userStore) List(int, int) ([]*entity.User, error)         { return nil, nil }

func newAuthUC(store *userStore) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "consigna-pro",
	})
}

func TestRegisterYLogin(t *testing.T) {
	store := newUserStore()
	uc := newAuthUC(store)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.com",
		Password: "clave-segura",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role, "sin rol explícito se asume vendedor")
	assert.NotEmpty(t, user.ID)

	// El hash nunca viaja en la respuesta y no es el texto plano.
	stored := store.byEmail["ana@tienda.com"]
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(newUserStore())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := newUserStore()
	uc := newAuthUC(store)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	store.byEmail["ana@tienda.com"].Status = "inactive"
	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
