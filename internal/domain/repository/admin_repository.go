package repository

import (
	"context"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

// AdminMessageRepository mensajes de difusión.
type AdminMessageRepository interface {
	Create(ctx context.Context, msg *entity.AdminMessage) error
	// List filtra por rol (vacío = todos) y por destinatario (vacío = todos); más reciente primero.
	List(ctx context.Context, role, userID string) ([]*entity.AdminMessage, error)
}

// GroupCount resultado de un GROUP BY: clave + conteo.
type GroupCount struct {
	Key   string
	Count int64
}

// ReportRepository consultas de solo lectura para estadísticas y reportes del panel de administración.
type ReportRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	// CountUsersCreatedBetween cuenta registros con from <= created_at < to.
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// CountUsersByRole ordenado por conteo descendente.
	CountUsersByRole(ctx context.Context) ([]GroupCount, error)
	// DailyRegistrations registros por día (YYYY-MM-DD, UTC) desde since, en orden cronológico.
	DailyRegistrations(ctx context.Context, since time.Time) ([]GroupCount, error)
	CountMessages(ctx context.Context) (int64, error)
	// CountMessagesByRole un mensaje cuenta una vez por cada rol destinatario; conteo descendente.
	CountMessagesByRole(ctx context.Context) ([]GroupCount, error)
}

// LogFilter filtros de la consulta de logs.
type LogFilter struct {
	Level  string // vacío = todos
	Search string // subcadena de message o source, sin distinguir mayúsculas
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SystemLogRepository almacén de logs de peticiones (MongoDB o ring en memoria).
type SystemLogRepository interface {
	InsertMany(ctx context.Context, logs []entity.SystemLog) error
	// List más reciente primero, con el total que cumple el filtro.
	List(ctx context.Context, f LogFilter) ([]entity.SystemLog, int64, error)
	CountByLevel(ctx context.Context) (map[string]int64, error)
	ListSince(ctx context.Context, since time.Time) ([]entity.SystemLog, error)
}
