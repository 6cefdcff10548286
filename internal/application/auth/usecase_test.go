package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-motos/internal/application/auth"
	"github.com/jhoicas/inventario-motos/internal/application/dto"
	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-motos/pkg/jwt"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	uc := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "inventario-motos-test",
	})
	return uc, userRepo
}

// TestRegisterUser_HasheaPasswordYRolPorDefecto verifica el registro: el
// password queda hasheado con bcrypt y el rol por defecto es vendedor.
func TestRegisterUser_HasheaPasswordYRolPorDefecto(t *testing.T) {
	uc, userRepo := newAuth(t)

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "vendedor@taller.co",
		Password: "claveSegura123",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", resp.Role)
	assert.Equal(t, "vendedor@taller.co", resp.Name, "sin nombre, usa el email")

	stored, err := userRepo.GetByEmail("vendedor@taller.co")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "claveSegura123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash), []byte("claveSegura123")))
}

// TestRegisterUser_EmailDuplicado verifica ErrEmailAlreadyExists.
func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@taller.co",
		Password: "clave1",
		Role:     "admin",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@taller.co",
		Password: "clave2",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// TestLogin_TokenConClaims verifica que el login correcto emite un JWT
// cuyos claims cargan el usuario y su rol.
func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newAuth(t)

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@taller.co",
		Password: "claveSegura123",
		Name:     "Admin",
		Role:     "admin",
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{
		Email:    "admin@taller.co",
		Password: "claveSegura123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	userID, role, err := jwt.Parse("secreto-de-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "admin", role)
}

// TestLogin_CredencialesInvalidas verifica usuario inexistente y password
// incorrecto.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@taller.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email:    "vendedor@taller.co",
		Password: "claveCorrecta",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{
		Email:    "vendedor@taller.co",
		Password: "claveIncorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
