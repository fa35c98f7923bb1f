package entity

import "time"

// Niveles de SystemLog.
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// SystemLog entrada del registro de peticiones consultado desde el panel de administración.
type SystemLog struct {
	ID        string    `bson:"_id"`
	Timestamp time.Time `bson:"timestamp"`
	Level     string    `bson:"level"`
	Source    string    `bson:"source"`
	Message   string    `bson:"message"`
	Details   string    `bson:"details"`
}

// LevelForStatus deriva el nivel a partir del código HTTP.
func LevelForStatus(status int) string {
	switch {
	case status >= 500:
		return LogLevelError
	case status >= 400:
		return LogLevelWarning
	default:
		return LogLevelInfo
	}
}
