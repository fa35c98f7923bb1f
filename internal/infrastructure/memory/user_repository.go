package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.RoleSequenceRepository = (*RoleSequenceRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
		if !user.RoleID.IsZero() && u.RoleID == user.RoleID {
			return domain.ErrDuplicate
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	r.s.users = append(r.s.users, clone(user))
	return nil
}

func (r *UserRepo) find(pred func(*entity.User) bool) *entity.User {
	for _, u := range r.s.users {
		if pred(u) {
			return u
		}
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.find(func(u *entity.User) bool { return u.ID == id })), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.find(func(u *entity.User) bool { return u.Email == email })), nil
}

func (r *UserRepo) AssignRoleID(_ context.Context, userID string, roleID entity.RoleID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.find(func(u *entity.User) bool { return u.RoleID == roleID }) != nil {
		return false, domain.ErrDuplicate
	}
	u := r.find(func(u *entity.User) bool { return u.ID == userID })
	if u == nil || !u.RoleID.IsZero() {
		return false, nil
	}
	u.RoleID = roleID
	return true, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.find(func(u *entity.User) bool { return u.ID == user.ID })
	if u == nil {
		return domain.ErrUserNotFound
	}
	if other := r.find(func(o *entity.User) bool { return o.Email == user.Email && o.ID != user.ID }); other != nil {
		return domain.ErrEmailAlreadyExists
	}
	u.Email = user.Email
	u.Role = user.Role
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := slices.IndexFunc(r.s.users, func(u *entity.User) bool { return u.ID == id })
	if i < 0 {
		return false, nil
	}
	r.s.users = slices.Delete(r.s.users, i, i+1)
	return true, nil
}

func (r *UserRepo) EmailTakenByOther(_ context.Context, email, exceptID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.find(func(u *entity.User) bool { return u.Email == email && u.ID != exceptID }) != nil, nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	matched := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.RoleID.String()), search) {
			continue
		}
		matched = append(matched, clone(u))
	}
	slices.SortStableFunc(matched, func(a, b *entity.User) int {
		c := compareUsers(a, b, f.SortBy)
		if f.SortDesc {
			return -c
		}
		return c
	})
	total := int64(len(matched))
	return page(matched, f.Offset, f.Limit), total, nil
}

func compareUsers(a, b *entity.User, sortBy string) int {
	switch sortBy {
	case repository.UserSortEmail:
		return strings.Compare(a.Email, b.Email)
	case repository.UserSortRole:
		return strings.Compare(a.Role, b.Role)
	case repository.UserSortRoleID:
		return strings.Compare(a.RoleID.String(), b.RoleID.String())
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.Role == role {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

func (r *UserRepo) ListWithoutRoleID(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.RoleID.IsZero() {
			out = append(out, clone(u))
		}
	}
	slices.SortStableFunc(out, func(a, b *entity.User) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

// RoleSequenceRepo contador por prefijo en memoria.
type RoleSequenceRepo struct {
	s *Store
}

// Next inicializa la secuencia con el máximo RoleID existente del prefijo y la avanza bajo el lock de escritura.
func (r *RoleSequenceRepo) Next(_ context.Context, prefix string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	last, ok := r.s.sequences[prefix]
	if !ok {
		ids := make([]entity.RoleID, 0, len(r.s.users))
		for _, u := range r.s.users {
			ids = append(ids, u.RoleID)
		}
		last = entity.MaxRoleNumber(prefix, ids)
	}
	last++
	r.s.sequences[prefix] = last
	return last, nil
}
