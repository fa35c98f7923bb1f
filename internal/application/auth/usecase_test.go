package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/agrochain-api/internal/application/auth"
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/application/roleid"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/agrochain-api/pkg/jwt"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

const testSecret = "auth-test-secret"

func newUseCase(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		store.Users(),
		roleid.NewAllocator(store.RoleSequences()),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "agrochain-test"},
		logger.Nop(),
	)
}

type failingAllocator struct{}

func (failingAllocator) Allocate(context.Context, string) (entity.RoleID, error) {
	return "", errors.New("secuencia no disponible")
}

func TestSignup_AsignaRoleIDSecuencial(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	ctx := context.Background()

	first, err := uc.Signup(ctx, dto.SignupRequest{Email: "a@farm.io", Password: "secret", Role: entity.RoleFarmer})
	require.NoError(t, err)
	second, err := uc.Signup(ctx, dto.SignupRequest{Email: "b@farm.io", Password: "secret", Role: entity.RoleFarmer})
	require.NoError(t, err)

	assert.Equal(t, "Signup successful", first.Message)
	assert.Equal(t, "f1", first.User.RoleID)
	assert.Equal(t, "f2", second.User.RoleID)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "a@farm.io", Password: "secret", Role: entity.RoleFarmer})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "a@farm.io", Password: "otra", Role: entity.RoleDealer})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_CamposFaltantes(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	_, err := uc.Signup(context.Background(), dto.SignupRequest{Email: "a@farm.io", Role: entity.RoleFarmer})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignup_GuardaHashBcrypt(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{Email: "a@farm.io", Password: "secret", Role: entity.RoleFarmer})
	require.NoError(t, err)

	u, err := store.Users().GetByEmail(context.Background(), "a@farm.io")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
}

func TestLogin_MismoErrorParaEmailYPassword(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "a@farm.io", Password: "secret", Role: entity.RoleFarmer})
	require.NoError(t, err)

	_, errPassword := uc.Login(ctx, dto.LoginRequest{Email: "a@farm.io", Password: "wrong"})
	_, errEmail := uc.Login(ctx, dto.LoginRequest{Email: "nadie@farm.io", Password: "secret"})

	assert.ErrorIs(t, errPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, errPassword.Error(), errEmail.Error())
}

func TestLogin_DevuelveTokenValido(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "w@trade.io", Password: "secret", Role: entity.RoleWholesaler})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "w@trade.io", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", out.Message)
	require.NotNil(t, out.User.RoleID)
	assert.Equal(t, "w1", *out.User.RoleID)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleWholesaler, claims.Role)
	assert.Equal(t, "w1", claims.RoleID)
}

func legacyUser(t *testing.T, store *memory.Store, email, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: email, Email: email, PasswordHash: string(hash), Role: role,
	}))
}

func TestLogin_AsignaRoleIDFaltante(t *testing.T) {
	store := memory.NewStore()
	legacyUser(t, store, "old@dealer.io", entity.RoleDealer)
	uc := newUseCase(store)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "old@dealer.io", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, out.User.RoleID)
	assert.Equal(t, "d1", *out.User.RoleID)

	u, err := store.Users().GetByEmail(context.Background(), "old@dealer.io")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("d1"), u.RoleID)
}

func TestLogin_FalloDeAsignacionNoBloquea(t *testing.T) {
	store := memory.NewStore()
	legacyUser(t, store, "old@dealer.io", entity.RoleDealer)
	uc := auth.NewAuthUseCase(store.Users(), failingAllocator{},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "agrochain-test"}, logger.Nop())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "old@dealer.io", Password: "secret"})
	require.NoError(t, err)
	assert.Nil(t, out.User.RoleID)
	assert.NotEmpty(t, out.Token)
}
