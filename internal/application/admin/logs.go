package admin

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 500
	statsWindowHours   = 24
)

// ListLogs logs de peticiones paginados, más reciente primero.
func (uc *AdminUseCase) ListLogs(ctx context.Context, q dto.LogQuery) (*dto.LogListResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit, defaultLogPageSize, maxLogPageSize)
	from, err := parseLogDate(q.StartDate, false)
	if err != nil {
		return nil, err
	}
	to, err := parseLogDate(q.EndDate, true)
	if err != nil {
		return nil, err
	}
	level := strings.ToLower(strings.TrimSpace(q.Level))
	if level == "all" {
		level = ""
	}

	logs, total, err := uc.logRepo.List(ctx, repository.LogFilter{
		Level:  level,
		Search: strings.TrimSpace(q.Search),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, dto.LogEntry{
			ID:        l.ID,
			Timestamp: l.Timestamp,
			Level:     l.Level,
			Source:    l.Source,
			Message:   l.Message,
			Details:   l.Details,
		})
	}
	pages := totalPages(total, limit)
	return &dto.LogListResponse{
		Logs: entries,
		Pagination: dto.LogPagination{
			CurrentPage: page,
			TotalPages:  pages,
			TotalLogs:   total,
			HasNextPage: page < pages,
			HasPrevPage: page > 1,
		},
	}, nil
}

// parseLogDate acepta RFC 3339 o YYYY-MM-DD. Con endOfDay, una fecha sin hora cubre el día completo.
func parseLogDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// LogStats conteos por nivel, histograma de las últimas 24 horas (más antigua primero) y salud del sistema.
func (uc *AdminUseCase) LogStats(ctx context.Context) (*dto.LogStatsResponse, error) {
	counts, err := uc.logRepo.CountByLevel(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, c := range counts {
		total += c
	}

	start := uc.now().UTC().Truncate(time.Hour).Add(-(statsWindowHours - 1) * time.Hour)
	recent, err := uc.logRepo.ListSince(ctx, start)
	if err != nil {
		return nil, err
	}
	buckets := make([]dto.HourBucket, statsWindowHours)
	for i := range buckets {
		buckets[i].Hour = start.Add(time.Duration(i) * time.Hour)
	}
	for _, l := range recent {
		idx := int(l.Timestamp.Sub(start) / time.Hour)
		if idx >= 0 && idx < statsWindowHours {
			buckets[idx].Count++
		}
	}

	errorsN := counts[entity.LogLevelError]
	return &dto.LogStatsResponse{
		TotalLogs:    total,
		ErrorLogs:    errorsN,
		WarningLogs:  counts[entity.LogLevelWarning],
		InfoLogs:     counts[entity.LogLevelInfo],
		LogsByHour:   buckets,
		SystemHealth: systemHealth(errorsN, total),
	}, nil
}

// systemHealth max(0, 100 − errores/total × 100), 100 sin logs; dos decimales.
func systemHealth(errorsN, total int64) float64 {
	if total == 0 {
		return 100
	}
	h := 100 - float64(errorsN)/float64(total)*100
	return math.Max(0, round2(h))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
