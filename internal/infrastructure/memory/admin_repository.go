package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.AdminMessageRepository = (*AdminMessageRepo)(nil)
	_ repository.ReportRepository       = (*ReportRepo)(nil)
)

// AdminMessageRepo mensajes de administración en memoria.
type AdminMessageRepo struct {
	s *Store
}

func cloneMessage(m *entity.AdminMessage) *entity.AdminMessage {
	c := clone(m)
	c.Roles = slices.Clone(m.Roles)
	c.TargetUsers = slices.Clone(m.TargetUsers)
	return c
}

func (r *AdminMessageRepo) Create(_ context.Context, msg *entity.AdminMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	if msg.SentAt.IsZero() {
		msg.SentAt = now
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	r.s.messages = append(r.s.messages, cloneMessage(msg))
	return nil
}

func (r *AdminMessageRepo) List(_ context.Context, role, userID string) ([]*entity.AdminMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := newestFirst(r.s.messages,
		func(m *entity.AdminMessage) bool { return m.AddressedTo(role, userID) },
		func(m *entity.AdminMessage) time.Time { return m.SentAt },
	)
	for i, m := range out {
		out[i] = cloneMessage(m)
	}
	return out, nil
}

// ReportRepo agregaciones sobre usuarios y mensajes en memoria.
type ReportRepo struct {
	s *Store
}

func (r *ReportRepo) CountUsers(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *ReportRepo) CountUsersCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if !u.CreatedAt.Before(from) && u.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *ReportRepo) CountUsersByRole(_ context.Context) ([]repository.GroupCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, u := range r.s.users {
		counts[u.Role]++
	}
	return byCountDesc(counts), nil
}

func (r *ReportRepo) DailyRegistrations(_ context.Context, since time.Time) ([]repository.GroupCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, u := range r.s.users {
		if !u.CreatedAt.Before(since) {
			counts[u.CreatedAt.UTC().Format(time.DateOnly)]++
		}
	}
	out := make([]repository.GroupCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, repository.GroupCount{Key: day, Count: n})
	}
	slices.SortFunc(out, func(a, b repository.GroupCount) int { return cmp.Compare(a.Key, b.Key) })
	return out, nil
}

func (r *ReportRepo) CountMessages(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.messages)), nil
}

func (r *ReportRepo) CountMessagesByRole(_ context.Context) ([]repository.GroupCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, m := range r.s.messages {
		for _, role := range m.Roles {
			counts[role]++
		}
	}
	return byCountDesc(counts), nil
}

// byCountDesc ordena por conteo descendente y, a igual conteo, por clave.
func byCountDesc(counts map[string]int64) []repository.GroupCount {
	out := make([]repository.GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, repository.GroupCount{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b repository.GroupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
