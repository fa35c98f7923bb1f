package entity

import "time"

// User representa un usuario de la plataforma.
// RoleID se asigna una sola vez (signup o primer login) y nunca se reasigna.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Role         string // texto libre; ver RolePrefix
	RoleID       RoleID // vacío hasta ser asignado
	CreatedAt    time.Time
}

// UserStatusActive estado reportado en los listados de administración (no existe otro estado persistido).
const UserStatusActive = "active"
