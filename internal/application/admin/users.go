package admin

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

const (
	defaultUserPageSize = 10
	maxUserPageSize     = 100
)

var userSortColumns = map[string]bool{
	repository.UserSortCreatedAt: true,
	repository.UserSortEmail:     true,
	repository.UserSortRole:      true,
	repository.UserSortRoleID:    true,
}

// ListUsers listado paginado con filtro por rol ("all" = sin filtro), búsqueda y orden.
func (uc *AdminUseCase) ListUsers(ctx context.Context, q dto.UserListQuery) (*dto.UserListResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit, defaultUserPageSize, maxUserPageSize)
	role := strings.TrimSpace(q.Role)
	if strings.EqualFold(role, "all") {
		role = ""
	}
	sortBy := q.SortBy
	if !userSortColumns[sortBy] {
		sortBy = repository.UserSortCreatedAt
	}

	users, total, err := uc.userRepo.List(ctx, repository.UserFilter{
		Role:     role,
		Search:   strings.TrimSpace(q.Search),
		SortBy:   sortBy,
		SortDesc: !strings.EqualFold(q.SortOrder, "asc"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	pages := totalPages(total, limit)
	return &dto.UserListResponse{
		Users: toAdminUsers(users),
		Pagination: dto.UserPagination{
			CurrentPage: page,
			TotalPages:  pages,
			TotalUsers:  total,
			HasNextPage: page < pages,
			HasPrevPage: page > 1,
		},
	}, nil
}

// UserStats totales, reparto por rol y registros recientes (7 días y hoy, UTC).
func (uc *AdminUseCase) UserStats(ctx context.Context) (*dto.UserStatsResponse, error) {
	now := uc.now().UTC()
	total, err := uc.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := uc.reportRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.reportRepo.CountUsersCreatedBetween(ctx, now.Add(-7*24*time.Hour), now)
	if err != nil {
		return nil, err
	}
	today, err := uc.reportRepo.CountUsersCreatedBetween(ctx, now.Truncate(24*time.Hour), now)
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{
		TotalUsers:          total,
		UsersByRole:         toGroupCounts(byRole),
		RecentRegistrations: recent,
		TodayRegistrations:  today,
	}, nil
}

// UpdateUser cambia email y rol. ErrInvalidInput si faltan campos, ErrEmailAlreadyExists si el email
// lo usa otro usuario, ErrUserNotFound si no existe. El RoleID no cambia aunque cambie el rol.
func (uc *AdminUseCase) UpdateUser(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.AdminUser, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Role) == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	taken, err := uc.userRepo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailAlreadyExists
	}

	user.Email = email
	user.Role = in.Role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Str("role", user.Role).Msg("usuario actualizado")
	out := toAdminUser(user)
	return &out, nil
}

// DeleteUser elimina un usuario. ErrUserNotFound si no existía.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID string) error {
	ok, err := uc.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	uc.log.Info().Str("user_id", userID).Msg("usuario eliminado")
	return nil
}

// UsersByRole todos los usuarios de un rol. ErrInvalidInput si role está vacío.
func (uc *AdminUseCase) UsersByRole(ctx context.Context, role string) (*dto.UsersByRoleResponse, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, domain.ErrInvalidInput
	}
	users, err := uc.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	out := toAdminUsers(users)
	return &dto.UsersByRoleResponse{Users: out, Count: len(out)}, nil
}

func toAdminUser(u *entity.User) dto.AdminUser {
	var roleID *string
	if !u.RoleID.IsZero() {
		s := u.RoleID.String()
		roleID = &s
	}
	return dto.AdminUser{
		ID:        u.ID,
		Email:     u.Email,
		RoleID:    roleID,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		Status:    entity.UserStatusActive,
	}
}

func toAdminUsers(users []*entity.User) []dto.AdminUser {
	out := make([]dto.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUser(u))
	}
	return out
}

func toGroupCounts(in []repository.GroupCount) []dto.GroupCount {
	out := make([]dto.GroupCount, 0, len(in))
	for _, g := range in {
		out = append(out, dto.GroupCount{ID: g.Key, Count: g.Count})
	}
	return out
}
