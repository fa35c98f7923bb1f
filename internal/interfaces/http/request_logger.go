package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// RequestRecorder destino de las entradas del registro de peticiones.
type RequestRecorder interface {
	Record(entry entity.SystemLog) bool
}

// RequestLogger registra cada petición con zerolog y, si es de /api, la envía al recorder.
func RequestLogger(log *logger.Logger, recorder RequestRecorder) fiber.Handler {
	httpLog := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(chainErr, &fe) {
			status = fe.Code
		} else if chainErr != nil {
			status = fiber.StatusInternalServerError
		}
		latency := time.Since(start)
		method := c.Method()
		path := c.Path()
		level := entity.LevelForStatus(status)

		ev := httpLog.Info()
		switch level {
		case entity.LogLevelError:
			ev = httpLog.Error()
		case entity.LogLevelWarning:
			ev = httpLog.Warn()
		}
		ev.Str("method", method).Str("path", path).Int("status", status).Dur("latency", latency).Str("ip", c.IP()).Msg("request")

		if recorder != nil && strings.HasPrefix(path, "/api/") {
			recorder.Record(entity.SystemLog{
				ID:        uuid.New().String(),
				Timestamp: start.UTC(),
				Level:     level,
				Source:    sourceForPath(path),
				Message:   fmt.Sprintf("%s %s %d", method, path, status),
				Details:   fmt.Sprintf("latency=%dms ip=%s", latency.Milliseconds(), c.IP()),
			})
		}
		return chainErr
	}
}

// sourceForPath clasifica la petición por área de la API.
func sourceForPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/auth"):
		return "auth"
	case strings.HasPrefix(path, "/api/admin/users"):
		return "user"
	case strings.HasPrefix(path, "/api/inventory"):
		return "inventory"
	default:
		return "api"
	}
}
