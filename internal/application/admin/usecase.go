// Package admin casos de uso del panel de administración: usuarios, logs, reportes, configuración y mensajes.
package admin

import (
	"context"
	"math"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// MessagePublisher difunde un mensaje ya persistido a los suscriptores.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, msg *entity.AdminMessage) error
}

// NopPublisher no publica nada (sin Redis configurado).
type NopPublisher struct{}

func (NopPublisher) PublishMessage(context.Context, *entity.AdminMessage) error { return nil }

// AdminUseCase agrupa las operaciones de /api/admin.
type AdminUseCase struct {
	userRepo    repository.UserRepository
	reportRepo  repository.ReportRepository
	logRepo     repository.SystemLogRepository
	messageRepo repository.AdminMessageRepository
	publisher   MessagePublisher
	log         *logger.Logger
	startedAt   time.Time
	now         func() time.Time
}

// NewAdminUseCase construye el caso de uso. publisher puede ser nil.
func NewAdminUseCase(
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	logRepo repository.SystemLogRepository,
	messageRepo repository.AdminMessageRepository,
	publisher MessagePublisher,
	log *logger.Logger,
) *AdminUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &AdminUseCase{
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		logRepo:     logRepo,
		messageRepo: messageRepo,
		publisher:   publisher,
		log:         log.Component("admin"),
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// totalPages ceil(total/limit).
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// (page-1)*limit debe caber en int.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}
