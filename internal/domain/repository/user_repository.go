package repository

import (
	"context"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

// Columnas permitidas para ordenar el listado de usuarios.
const (
	UserSortCreatedAt = "createdAt"
	UserSortEmail     = "email"
	UserSortRole      = "role"
	UserSortRoleID    = "roleId"
)

// UserFilter filtros del listado de administración.
type UserFilter struct {
	Role     string // vacío = todos
	Search   string // subcadena (sin distinguir mayúsculas) de email o roleId
	SortBy   string // una de las constantes UserSort*
	SortDesc bool
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	// Create persiste el usuario. ErrEmailAlreadyExists si el email existe, ErrDuplicate si el RoleID ya está tomado.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// AssignRoleID fija el RoleID solo si el usuario aún no tiene uno. Devuelve false si no se modificó nada.
	AssignRoleID(ctx context.Context, userID string, roleID entity.RoleID) (bool, error)
	// Update modifica email y rol. El RoleID nunca se reasigna.
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve false si el usuario no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// EmailTakenByOther indica si otro usuario (distinto de exceptID) usa el email.
	EmailTakenByOther(ctx context.Context, email, exceptID string) (bool, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, int64, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	// ListWithoutRoleID devuelve los usuarios pendientes de RoleID, del más antiguo al más nuevo.
	ListWithoutRoleID(ctx context.Context) ([]*entity.User, error)
}

// RoleSequenceRepository contador atómico por prefijo para la asignación de RoleID.
// Se indexa por prefijo (no por rol) porque todos los roles desconocidos comparten "u".
type RoleSequenceRepository interface {
	// Next avanza la secuencia del prefijo en una sola operación atómica y devuelve el nuevo valor.
	// La primera vez se inicializa con el mayor número ya asignado con ese prefijo.
	Next(ctx context.Context, prefix string) (int64, error)
}
