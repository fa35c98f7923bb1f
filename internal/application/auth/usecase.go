package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/pkg/jwt"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RoleIDAllocator asigna el siguiente RoleID de un rol.
type RoleIDAllocator interface {
	Allocate(ctx context.Context, role string) (entity.RoleID, error)
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	allocator RoleIDAllocator
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, allocator RoleIDAllocator, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		allocator: allocator,
		jwtCfg:    jwtCfg,
		log:       log.Component("auth"),
		now:       time.Now,
	}
}

// Signup registra un usuario con RoleID asignado. ErrInvalidInput si falta algún campo,
// ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	roleID, err := uc.allocator.Allocate(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		RoleID:       roleID,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("email", user.Email).Str("role", user.Role).Str("role_id", roleID.String()).Msg("signup")

	return &dto.SignupResponse{
		Message: "Signup successful",
		User:    dto.SignupUser{Email: user.Email, Role: user.Role, RoleID: roleID.String()},
	}, nil
}

// Login verifica email/password y devuelve token + usuario. Email desconocido y password incorrecto
// devuelven el mismo ErrInvalidCredentials. Si el usuario no tiene RoleID se le asigna; si la
// asignación falla se registra el error y el login continúa con roleId null.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.RoleID.IsZero() {
		if err := uc.backfillRoleID(ctx, user); err != nil {
			uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo asignar role id en login")
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.RoleID.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	var roleID *string
	if !user.RoleID.IsZero() {
		s := user.RoleID.String()
		roleID = &s
	}
	return &dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.LoginUser{ID: user.ID, Email: user.Email, Role: user.Role, RoleID: roleID},
	}, nil
}

// backfillRoleID asigna un RoleID a un usuario que no lo tiene. Si otro login concurrente
// ya lo asignó, relee el usuario para devolver el valor vigente.
func (uc *AuthUseCase) backfillRoleID(ctx context.Context, user *entity.User) error {
	roleID, err := uc.allocator.Allocate(ctx, user.Role)
	if err != nil {
		return err
	}
	assigned, err := uc.userRepo.AssignRoleID(ctx, user.ID, roleID)
	if err != nil {
		return err
	}
	if assigned {
		user.RoleID = roleID
		uc.log.Info().Str("email", user.Email).Str("role_id", roleID.String()).Msg("role id asignado en login")
		return nil
	}
	current, err := uc.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return errors.New("usuario eliminado durante el login")
	}
	user.RoleID = current.RoleID
	return nil
}
