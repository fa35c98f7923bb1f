package admin

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

var fixedNow = time.Date(2025, 3, 20, 15, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	published []*entity.AdminMessage
	err       error
}

func (p *recordingPublisher) PublishMessage(_ context.Context, msg *entity.AdminMessage) error {
	p.published = append(p.published, msg)
	return p.err
}

type fixture struct {
	uc    *AdminUseCase
	store *memory.Store
	logs  *memory.LogRing
	pub   *recordingPublisher
}

func newFixture() *fixture {
	store := memory.NewStore()
	logs := memory.NewLogRing(100)
	pub := &recordingPublisher{}
	uc := NewAdminUseCase(store.Users(), store.Reports(), logs, store.AdminMessages(), pub, logger.Nop())
	uc.now = func() time.Time { return fixedNow }
	uc.startedAt = fixedNow.Add(-time.Minute)
	return &fixture{uc: uc, store: store, logs: logs, pub: pub}
}

func (f *fixture) addUser(t *testing.T, id, email, role, roleID string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{
		ID: id, Email: email, PasswordHash: "x", Role: role, RoleID: entity.RoleID(roleID), CreatedAt: createdAt,
	}))
}

func TestListUsers_PaginacionYFiltros(t *testing.T) {
	f := newFixture()
	for i, email := range []string{"a@agro.test", "b@agro.test", "c@agro.test"} {
		f.addUser(t, email, email, entity.RoleDealer, entity.NewRoleID("d", int64(i+1)).String(), fixedNow.Add(-time.Duration(i+1)*time.Hour))
	}
	f.addUser(t, "w", "w@agro.test", entity.RoleWholesaler, "w1", fixedNow.Add(-10*time.Hour))

	res, err := f.uc.ListUsers(context.Background(), dto.UserListQuery{Page: 1, Limit: 2, Role: "all"})
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, int64(4), res.Pagination.TotalUsers)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNextPage)
	assert.False(t, res.Pagination.HasPrevPage)
	assert.Equal(t, "a@agro.test", res.Users[0].Email, "más reciente primero por defecto")
	assert.Equal(t, "active", res.Users[0].Status)

	res, err = f.uc.ListUsers(context.Background(), dto.UserListQuery{Role: entity.RoleWholesaler})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	require.NotNil(t, res.Users[0].RoleID)
	assert.Equal(t, "w1", *res.Users[0].RoleID)

	res, err = f.uc.ListUsers(context.Background(), dto.UserListQuery{Search: "D2"})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "b@agro.test", res.Users[0].Email)
}

func TestNormalizePage_PaginaEnorme(t *testing.T) {
	page, limit := normalizePage(math.MaxInt, 2, 10, 100)
	assert.Equal(t, 2, limit)
	assert.Equal(t, math.MaxInt/2, page)
	assert.GreaterOrEqual(t, (page-1)*limit, 0)

	page, limit = normalizePage(-3, 0, 10, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestListUsers_PaginaFueraDeRango(t *testing.T) {
	f := newFixture()
	f.addUser(t, "a", "a@agro.test", entity.RoleDealer, "d1", fixedNow.Add(-time.Hour))

	res, err := f.uc.ListUsers(context.Background(), dto.UserListQuery{Page: 1<<62 + 1, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.Equal(t, int64(1), res.Pagination.TotalUsers)
	assert.False(t, res.Pagination.HasNextPage)
	assert.True(t, res.Pagination.HasPrevPage)
}

func TestListLogs_PaginaFueraDeRango(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.logs.InsertMany(context.Background(), []entity.SystemLog{
		{ID: "1", Timestamp: fixedNow.Add(-time.Hour), Level: "info", Source: "api", Message: "GET /api/x 200"},
	}))

	res, err := f.uc.ListLogs(context.Background(), dto.LogQuery{Page: math.MaxInt, Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, res.Logs)
	assert.Equal(t, int64(1), res.Pagination.TotalLogs)
}

func TestUserStats(t *testing.T) {
	f := newFixture()
	f.addUser(t, "1", "1@agro.test", entity.RoleDealer, "d1", fixedNow.Add(-time.Hour))
	f.addUser(t, "2", "2@agro.test", entity.RoleDealer, "d2", fixedNow.Add(-3*24*time.Hour))
	f.addUser(t, "3", "3@agro.test", entity.RoleFarmer, "f1", fixedNow.Add(-20*24*time.Hour))

	stats, err := f.uc.UserStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.RecentRegistrations)
	assert.Equal(t, int64(1), stats.TodayRegistrations)
	require.Len(t, stats.UsersByRole, 2)
	assert.Equal(t, dto.GroupCount{ID: entity.RoleDealer, Count: 2}, stats.UsersByRole[0])
}

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "1", "uno@agro.test", entity.RoleDealer, "d1", fixedNow)
	f.addUser(t, "2", "dos@agro.test", entity.RoleDealer, "d2", fixedNow)

	_, err := f.uc.UpdateUser(ctx, "1", dto.UpdateUserRequest{Email: "dos@agro.test", Role: entity.RoleDealer})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = f.uc.UpdateUser(ctx, "1", dto.UpdateUserRequest{Email: "", Role: entity.RoleDealer})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateUser(ctx, "nadie", dto.UpdateUserRequest{Email: "x@agro.test", Role: entity.RoleDealer})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := f.uc.UpdateUser(ctx, "1", dto.UpdateUserRequest{Email: "nuevo@agro.test", Role: entity.RoleRetailer})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@agro.test", u.Email)
	assert.Equal(t, entity.RoleRetailer, u.Role)
	require.NotNil(t, u.RoleID)
	assert.Equal(t, "d1", *u.RoleID, "el RoleID no se reasigna")
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "1", "uno@agro.test", entity.RoleDealer, "d1", fixedNow)

	require.NoError(t, f.uc.DeleteUser(ctx, "1"))
	assert.ErrorIs(t, f.uc.DeleteUser(ctx, "1"), domain.ErrUserNotFound)
}

func TestUsersByRole(t *testing.T) {
	f := newFixture()
	f.addUser(t, "1", "uno@agro.test", entity.RoleDealer, "d1", fixedNow)
	f.addUser(t, "2", "dos@agro.test", entity.RoleFarmer, "f1", fixedNow)

	_, err := f.uc.UsersByRole(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.uc.UsersByRole(context.Background(), entity.RoleFarmer)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "dos@agro.test", res.Users[0].Email)
}

func TestListLogs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.logs.InsertMany(ctx, []entity.SystemLog{
		{ID: "1", Timestamp: fixedNow.Add(-48 * time.Hour), Level: "info", Source: "auth", Message: "POST /api/auth/login 200"},
		{ID: "2", Timestamp: fixedNow.Add(-2 * time.Hour), Level: "error", Source: "inventory", Message: "GET /api/inventory/w1 500"},
		{ID: "3", Timestamp: fixedNow.Add(-time.Hour), Level: "warning", Source: "user", Message: "PUT /api/admin/users/x 404"},
	}))

	res, err := f.uc.ListLogs(ctx, dto.LogQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Pagination.TotalLogs)
	assert.Equal(t, "3", res.Logs[0].ID)

	res, err = f.uc.ListLogs(ctx, dto.LogQuery{Level: "error"})
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)
	assert.Equal(t, "2", res.Logs[0].ID)

	res, err = f.uc.ListLogs(ctx, dto.LogQuery{StartDate: "2025-03-20", EndDate: "2025-03-20"})
	require.NoError(t, err)
	assert.Len(t, res.Logs, 2)

	_, err = f.uc.ListLogs(ctx, dto.LogQuery{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.logs.InsertMany(ctx, []entity.SystemLog{
		{ID: "1", Timestamp: fixedNow.Add(-30 * time.Hour), Level: "info"},
		{ID: "2", Timestamp: fixedNow.Add(-time.Minute), Level: "error"},
		{ID: "3", Timestamp: fixedNow.Add(-2 * time.Minute), Level: "info"},
		{ID: "4", Timestamp: fixedNow.Add(-3 * time.Hour), Level: "warning"},
	}))

	stats, err := f.uc.LogStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalLogs)
	assert.Equal(t, int64(1), stats.ErrorLogs)
	assert.Equal(t, int64(1), stats.WarningLogs)
	assert.Equal(t, int64(2), stats.InfoLogs)
	assert.Equal(t, 75.0, stats.SystemHealth)

	require.Len(t, stats.LogsByHour, 24)
	assert.True(t, stats.LogsByHour[0].Hour.Before(stats.LogsByHour[23].Hour))
	assert.Equal(t, 2, stats.LogsByHour[23].Count)
	assert.Equal(t, 1, stats.LogsByHour[20].Count)
}

func TestSystemHealth(t *testing.T) {
	assert.Equal(t, 100.0, systemHealth(0, 0))
	assert.Equal(t, 0.0, systemHealth(5, 5))
	assert.Equal(t, 66.67, systemHealth(1, 3))
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 100.0, growthRate(3, 0))
	assert.Equal(t, 0.0, growthRate(0, 0))
	assert.Equal(t, 50.0, growthRate(3, 2))
	assert.Equal(t, -50.0, growthRate(1, 2))
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, 30*day, parsePeriod("30d"))
	assert.Equal(t, 24*time.Hour, parsePeriod("24h"))
	assert.Equal(t, defaultReportPeriod, parsePeriod(""))
	assert.Equal(t, defaultReportPeriod, parsePeriod("xd"))
}

func TestReport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addUser(t, "1", "1@agro.test", entity.RoleDealer, "d1", fixedNow.Add(-time.Hour))
	f.addUser(t, "2", "2@agro.test", entity.RoleDealer, "d2", fixedNow.Add(-2*day))
	f.addUser(t, "3", "3@agro.test", entity.RoleFarmer, "f1", fixedNow.Add(-10*day))
	_, err := f.uc.SendMessage(ctx, dto.SendMessageRequest{Subject: "s", Message: "m", Roles: []string{"Dealer", "Farmer"}}, nil)
	require.NoError(t, err)

	rep, err := f.uc.Report(ctx, "7d")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rep.UserMetrics.TotalUsers)
	assert.Equal(t, int64(2), rep.UserMetrics.RecentUsers)
	assert.Equal(t, 100.0, rep.UserMetrics.GrowthRate)
	assert.Len(t, rep.UserMetrics.DailyRegistrations, 3)
	assert.Equal(t, int64(1), rep.MessageMetrics.TotalMessages)
	assert.Len(t, rep.MessageMetrics.MessagesByRole, 2)
	assert.InDelta(t, 60.0, rep.SystemMetrics.Uptime, 0.001)
	assert.NotEmpty(t, rep.SystemMetrics.GoVersion)
}

func TestSettings(t *testing.T) {
	f := newFixture()
	assert.True(t, f.uc.Settings().System.RegistrationEnabled)

	_, err := f.uc.UpdateSettings(dto.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.uc.UpdateSettings(dto.UpdateSettingsRequest{Settings: map[string]any{"system": map[string]any{"maintenanceMode": true}}})
	require.NoError(t, err)
	assert.Contains(t, res.Settings, "system")
	assert.False(t, f.uc.Settings().System.MaintenanceMode, "no se persiste")
}

func TestSendMessage_YBandeja(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := "admin-1"

	_, err := f.uc.SendMessage(ctx, dto.SendMessageRequest{Subject: "s", Message: "m"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	broadcast, err := f.uc.SendMessage(ctx, dto.SendMessageRequest{Subject: "Lluvias", Message: "Alerta", Roles: []string{"Farmer"}}, &admin)
	require.NoError(t, err)
	require.NotNil(t, broadcast.SentBy)
	assert.Equal(t, admin, *broadcast.SentBy)
	assert.Empty(t, broadcast.TargetUsers)

	f.uc.now = func() time.Time { return fixedNow.Add(time.Minute) }
	_, err = f.uc.SendMessage(ctx, dto.SendMessageRequest{Subject: "Privado", Message: "Hola", Roles: []string{"Farmer"}, TargetUsers: []string{"u1"}}, nil)
	require.NoError(t, err)
	assert.Len(t, f.pub.published, 2)

	inbox, err := f.uc.Messages(ctx, "Farmer", "u2")
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "Lluvias", inbox.Messages[0].Subject)

	inbox, err = f.uc.Messages(ctx, "Farmer", "u1")
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 2)
	assert.Equal(t, "Privado", inbox.Messages[0].Subject)

	inbox, err = f.uc.Messages(ctx, "Dealer", "")
	require.NoError(t, err)
	assert.Empty(t, inbox.Messages)
}

func TestSendMessage_FalloAlPublicarNoFalla(t *testing.T) {
	f := newFixture()
	f.pub.err = errors.New("redis caído")

	_, err := f.uc.SendMessage(context.Background(), dto.SendMessageRequest{Subject: "s", Message: "m", Roles: []string{"Dealer"}}, nil)
	require.NoError(t, err)

	inbox, err := f.uc.Messages(context.Background(), "Dealer", "")
	require.NoError(t, err)
	assert.Len(t, inbox.Messages, 1)
}
