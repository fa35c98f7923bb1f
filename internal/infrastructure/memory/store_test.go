package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

func TestRoleSequence_ContinuaDesdeElMaximo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i, id := range []entity.RoleID{"w1", "w2", "w7", "wx"} {
		require.NoError(t, s.Users().Create(ctx, &entity.User{
			ID: string(rune('a' + i)), Email: string(rune('a'+i)) + "@x.io", Role: entity.RoleWholesaler, RoleID: id,
		}))
	}

	n, err := s.RoleSequences().Next(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	n, err = s.RoleSequences().Next(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	n, err = s.RoleSequences().Next(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUsers_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "1", Email: "a@x.io", Role: entity.RoleFarmer}))
	err := s.Users().Create(ctx, &entity.User{ID: "2", Email: "a@x.io", Role: entity.RoleFarmer})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUsers_AssignRoleIDUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "1", Email: "a@x.io", Role: entity.RoleFarmer}))

	ok, err := s.Users().AssignRoleID(ctx, "1", "f1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Users().AssignRoleID(ctx, "1", "f2")
	require.NoError(t, err)
	assert.False(t, ok)

	u, err := s.Users().GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("f1"), u.RoleID)
}

func TestUsers_ListFiltraYPagina(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []*entity.User{
		{ID: "1", Email: "ana@farm.io", Role: entity.RoleFarmer, RoleID: "f1", CreatedAt: base},
		{ID: "2", Email: "bob@farm.io", Role: entity.RoleFarmer, RoleID: "f2", CreatedAt: base.Add(time.Hour)},
		{ID: "3", Email: "carl@shop.io", Role: entity.RoleRetailer, RoleID: "r1", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, u := range users {
		require.NoError(t, s.Users().Create(ctx, u))
	}

	got, total, err := s.Users().List(ctx, repository.UserFilter{Search: "FARM", SortBy: repository.UserSortCreatedAt, SortDesc: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, "bob@farm.io", got[0].Email)

	got, total, err = s.Users().List(ctx, repository.UserFilter{Role: entity.RoleRetailer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "carl@shop.io", got[0].Email)
}

func TestDealerStock_UpsertUltimaEscrituraGana(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	first := &entity.DealerStock{ID: "s1", DealerID: "d1", ItemName: "Urea", Category: "Fertilizer", Unit: "kg", Quantity: decimal.NewFromInt(10), Price: "30"}
	second := &entity.DealerStock{ID: "s2", DealerID: "d1", ItemName: "Urea", Category: "Fertilizer", Unit: "kg", Quantity: decimal.NewFromInt(4), Price: "32"}

	_, err := s.DealerStock().Upsert(ctx, first)
	require.NoError(t, err)
	got, err := s.DealerStock().Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	all, err := s.DealerStock().ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "32", all[0].Price)
}

func TestDealerStock_ListAvailableOmiteSinExistencias(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.DealerStock().Upsert(ctx, &entity.DealerStock{ID: "s1", DealerID: "d1", ItemName: "Urea", Quantity: decimal.Zero})
	require.NoError(t, err)
	all, err := s.DealerStock().ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminMessages_FiltroPorRolYUsuario(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AdminMessages().Create(ctx, &entity.AdminMessage{ID: "m1", Subject: "a", Roles: []string{"Farmer"}, SentAt: base}))
	require.NoError(t, s.AdminMessages().Create(ctx, &entity.AdminMessage{ID: "m2", Subject: "b", Roles: []string{"Farmer", "Dealer"}, TargetUsers: []string{"u9"}, SentAt: base.Add(time.Hour)}))

	got, err := s.AdminMessages().List(ctx, "Farmer", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].ID)

	got, err = s.AdminMessages().List(ctx, "Farmer", "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)

	got, err = s.AdminMessages().List(ctx, "Dealer", "u9")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
}

func TestReports_CountByRoleOrdenDescendente(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i, role := range []string{"Farmer", "Dealer", "Farmer"} {
		require.NoError(t, s.Users().Create(ctx, &entity.User{ID: string(rune('a' + i)), Email: string(rune('a'+i)) + "@x.io", Role: role}))
	}
	got, err := s.Reports().CountUsersByRole(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, repository.GroupCount{Key: "Farmer", Count: 2}, got[0])
}

func TestLogRing_DescartaLosMasAntiguos(t *testing.T) {
	ctx := context.Background()
	r := NewLogRing(2)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.InsertMany(ctx, []entity.SystemLog{
		{ID: "1", Timestamp: base, Level: entity.LogLevelInfo, Message: "GET /a"},
		{ID: "2", Timestamp: base.Add(time.Second), Level: entity.LogLevelError, Message: "GET /b"},
		{ID: "3", Timestamp: base.Add(2 * time.Second), Level: entity.LogLevelWarning, Message: "POST /c"},
	}))

	logs, total, err := r.List(ctx, repository.LogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "3", logs[0].ID)
	assert.Equal(t, "2", logs[1].ID)

	logs, _, err = r.List(ctx, repository.LogFilter{Search: "post"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "3", logs[0].ID)

	counts, err := r.CountByLevel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entity.LogLevelError])
	assert.Zero(t, counts[entity.LogLevelInfo])
}

func TestPage_OffsetFueraDeRango(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Empty(t, page(items, -4, 2))
	assert.Empty(t, page(items, 3, 2))
	assert.Equal(t, []int{2, 3}, page(items, 1, 0))
	assert.Equal(t, []int{1, 2}, page(items, 0, 2))
}
