package admin

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
)

const (
	day                 = 24 * time.Hour
	defaultReportPeriod = 7 * day
	registrationsWindow = 30 * day
)

// Report métricas de usuarios, mensajes y del proceso. period ("7d", "30d", "24h") fija la
// ventana de recentUsers; un valor inválido usa 7 días.
func (uc *AdminUseCase) Report(ctx context.Context, period string) (*dto.ReportResponse, error) {
	now := uc.now().UTC()
	window := parsePeriod(period)

	total, err := uc.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.reportRepo.CountUsersCreatedBetween(ctx, now.Add(-window), now)
	if err != nil {
		return nil, err
	}
	byRole, err := uc.reportRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := uc.reportRepo.DailyRegistrations(ctx, now.Truncate(day).Add(-registrationsWindow))
	if err != nil {
		return nil, err
	}
	lastWeek, err := uc.reportRepo.CountUsersCreatedBetween(ctx, now.Add(-7*day), now)
	if err != nil {
		return nil, err
	}
	prevWeek, err := uc.reportRepo.CountUsersCreatedBetween(ctx, now.Add(-14*day), now.Add(-7*day))
	if err != nil {
		return nil, err
	}
	messages, err := uc.reportRepo.CountMessages(ctx)
	if err != nil {
		return nil, err
	}
	messagesByRole, err := uc.reportRepo.CountMessagesByRole(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ReportResponse{
		UserMetrics: dto.UserMetrics{
			TotalUsers:         total,
			RecentUsers:        recent,
			UsersByRole:        toGroupCounts(byRole),
			DailyRegistrations: toGroupCounts(daily),
			GrowthRate:         growthRate(lastWeek, prevWeek),
		},
		MessageMetrics: dto.MessageMetrics{
			TotalMessages:  messages,
			MessagesByRole: toGroupCounts(messagesByRole),
		},
		SystemMetrics: uc.systemMetrics(),
	}, nil
}

// growthRate variación porcentual entre dos ventanas. Con previous = 0 devuelve 100 si hubo altas y 0 si no.
func growthRate(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2(float64(current-previous) / float64(previous) * 100)
}

func parsePeriod(raw string) time.Duration {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if n, ok := strings.CutSuffix(raw, "d"); ok {
		if days, err := strconv.Atoi(n); err == nil && days > 0 {
			return time.Duration(days) * day
		}
		return defaultReportPeriod
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return defaultReportPeriod
}

func (uc *AdminUseCase) systemMetrics() dto.SystemMetrics {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return dto.SystemMetrics{
		Uptime: uc.now().Sub(uc.startedAt).Seconds(),
		MemoryUsage: dto.MemoryUsage{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
		},
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Goroutines: runtime.NumGoroutine(),
	}
}
