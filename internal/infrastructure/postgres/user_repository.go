package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.RoleSequenceRepository = (*RoleSequenceRepo)(nil)
)

const userColumns = `id, email, password_hash, role, COALESCE(role_id, ''), created_at`

// userSortColumns lista blanca de columnas para ORDER BY.
var userSortColumns = map[string]string{
	repository.UserSortCreatedAt: "created_at",
	repository.UserSortEmail:     "email",
	repository.UserSortRole:      "role",
	repository.UserSortRoleID:    "role_id",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var roleID string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &roleID, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.RoleID = entity.RoleID(roleID)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// nullableRoleID mapea el RoleID vacío a NULL para no chocar con el índice único.
func nullableRoleID(id entity.RoleID) *string {
	if id.IsZero() {
		return nil
	}
	s := id.String()
	return &s
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role, nullableRoleID(user.RoleID), user.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "email") {
				return domain.ErrEmailAlreadyExists
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// AssignRoleID fija role_id solo si aún es NULL.
func (r *UserRepo) AssignRoleID(ctx context.Context, userID string, roleID entity.RoleID) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role_id = $2 WHERE id = $1 AND role_id IS NULL`, userID, roleID.String())
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("assign role id: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update modifica email y rol.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET email = $2, role = $3 WHERE id = $1`, user.ID, user.Email, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// EmailTakenByOther indica si otro usuario usa el email.
func (r *UserRepo) EmailTakenByOther(ctx context.Context, email, exceptID string) (bool, error) {
	var taken bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}

// List listado paginado con filtro por rol, búsqueda y orden.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	if f.Role != "" {
		args = append(args, f.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		where = append(where, fmt.Sprintf("(email ILIKE $%d OR COALESCE(role_id, '') ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	col, ok := userSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY %s %s, id`, userColumns, cond, col, dir)
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan users: %w", err)
	}
	return users, total, nil
}

// ListByRole usuarios de un rol, por fecha de alta.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return collectUsers(rows)
}

// ListWithoutRoleID usuarios pendientes de RoleID, del más antiguo al más nuevo.
func (r *UserRepo) ListWithoutRoleID(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role_id IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users without role id: %w", err)
	}
	return collectUsers(rows)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// RoleSequenceRepo secuencia atómica por prefijo.
type RoleSequenceRepo struct {
	q Querier
}

// NewRoleSequenceRepository construye el adaptador.
func NewRoleSequenceRepository(q Querier) *RoleSequenceRepo {
	return &RoleSequenceRepo{q: q}
}

// roleIDPatterns expresiones para la semilla de Next: match filtra role_id {prefix}{1..18 dígitos}
// (cabe en BIGINT) y capture extrae el sufijo numérico.
func roleIDPatterns(prefix string) (match, capture string) {
	quoted := regexp.QuoteMeta(prefix)
	return "^" + quoted + "[0-9]{1,18}$", "^" + quoted + "([0-9]+)$"
}

// Next avanza la secuencia en una sola sentencia. La fila se crea la primera vez con
// max(sufijo numérico de los role_id con ese prefijo) + 1; los role_id mal formados no cuentan.
func (r *RoleSequenceRepo) Next(ctx context.Context, prefix string) (int64, error) {
	query := `
		INSERT INTO role_sequences (prefix, last_value)
		VALUES ($1, (
			SELECT COALESCE(MAX(substring(role_id FROM $3)::BIGINT), 0) + 1
			FROM users WHERE role_id ~ $2
		))
		ON CONFLICT (prefix) DO UPDATE SET last_value = role_sequences.last_value + 1
		RETURNING last_value`
	match, capture := roleIDPatterns(prefix)
	var n int64
	err := r.q.QueryRow(ctx, query, prefix, match, capture).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next role sequence: %w", err)
	}
	return n, nil
}
