package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.AdminMessageRepository = (*AdminMessageRepo)(nil)
	_ repository.ReportRepository       = (*ReportRepo)(nil)
)

// AdminMessageRepo mensajes de difusión; roles y destinatarios como TEXT[].
type AdminMessageRepo struct {
	q Querier
}

// NewAdminMessageRepository construye el adaptador.
func NewAdminMessageRepository(q Querier) *AdminMessageRepo {
	return &AdminMessageRepo{q: q}
}

// Create inserta el mensaje.
func (r *AdminMessageRepo) Create(ctx context.Context, msg *entity.AdminMessage) error {
	targets := msg.TargetUsers
	if targets == nil {
		targets = []string{}
	}
	query := `
		INSERT INTO admin_messages (id, subject, message, roles, target_users, sent_at, sent_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		msg.ID, msg.Subject, msg.Message, msg.Roles, targets, msg.SentAt, msg.SentBy, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin message: %w", err)
	}
	return nil
}

// List filtra por pertenencia del rol a roles y del usuario a target_users (vacío = todos).
func (r *AdminMessageRepo) List(ctx context.Context, role, userID string) ([]*entity.AdminMessage, error) {
	query := `
		SELECT id, subject, message, roles, target_users, sent_at, sent_by, created_at
		FROM admin_messages
		WHERE ($1 = '' OR $1 = ANY(roles))
		  AND ($2 = '' OR cardinality(target_users) = 0 OR $2 = ANY(target_users))
		ORDER BY sent_at DESC`
	rows, err := r.q.Query(ctx, query, role, userID)
	if err != nil {
		return nil, fmt.Errorf("list admin messages: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.AdminMessage, error) {
		var m entity.AdminMessage
		if err := row.Scan(&m.ID, &m.Subject, &m.Message, &m.Roles, &m.TargetUsers,
			&m.SentAt, &m.SentBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin message: %w", err)
		}
		return &m, nil
	})
}

// ReportRepo agregaciones para el panel de administración.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReportRepo) groupCounts(ctx context.Context, query string, args ...any) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.GroupCount, error) {
		var g repository.GroupCount
		err := row.Scan(&g.Key, &g.Count)
		return g, err
	})
}

// CountUsers total de usuarios.
func (r *ReportRepo) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountUsersCreatedBetween registros en [from, to).
func (r *ReportRepo) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`, from, to)
	if err != nil {
		return 0, fmt.Errorf("count users between: %w", err)
	}
	return n, nil
}

// CountUsersByRole conteo por rol, descendente.
func (r *ReportRepo) CountUsersByRole(ctx context.Context) ([]repository.GroupCount, error) {
	out, err := r.groupCounts(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY 2 DESC, 1`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	return out, nil
}

// DailyRegistrations registros por día UTC desde since.
func (r *ReportRepo) DailyRegistrations(ctx context.Context, since time.Time) ([]repository.GroupCount, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM users WHERE created_at >= $1
		GROUP BY day ORDER BY day`
	out, err := r.groupCounts(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("daily registrations: %w", err)
	}
	return out, nil
}

// CountMessages total de mensajes enviados.
func (r *ReportRepo) CountMessages(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM admin_messages`)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// CountMessagesByRole conteo por rol destinatario (unnest), descendente.
func (r *ReportRepo) CountMessagesByRole(ctx context.Context) ([]repository.GroupCount, error) {
	query := `
		SELECT role, COUNT(*) FROM admin_messages, unnest(roles) AS role
		GROUP BY role ORDER BY 2 DESC, 1`
	out, err := r.groupCounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count messages by role: %w", err)
	}
	return out, nil
}
