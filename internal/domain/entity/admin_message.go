package entity

import (
	"slices"
	"time"
)

// AdminMessage mensaje de difusión del administrador.
// TargetUsers vacío = dirigido a todos los usuarios de los roles listados.
type AdminMessage struct {
	ID          string
	Subject     string
	Message     string
	Roles       []string
	TargetUsers []string
	SentAt      time.Time
	SentBy      *string
	CreatedAt   time.Time
}

// AddressedTo indica si el mensaje aplica al rol/usuario dados (filtros vacíos no restringen).
func (m *AdminMessage) AddressedTo(role, userID string) bool {
	if role != "" && !slices.Contains(m.Roles, role) {
		return false
	}
	if userID != "" && len(m.TargetUsers) > 0 && !slices.Contains(m.TargetUsers, userID) {
		return false
	}
	return true
}
