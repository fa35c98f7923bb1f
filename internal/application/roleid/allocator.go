// Package roleid asigna los identificadores legibles por rol ({prefijo}{n}).
package roleid

import (
	"context"
	"fmt"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

// Allocator asigna RoleIDs secuenciales a partir del contador atómico por prefijo.
type Allocator struct {
	seq repository.RoleSequenceRepository
}

// NewAllocator construye el asignador.
func NewAllocator(seq repository.RoleSequenceRepository) *Allocator {
	return &Allocator{seq: seq}
}

// Allocate devuelve el siguiente RoleID del rol: prefix1 si es el primero, prefix(max+1) en otro caso.
// Dos llamadas concurrentes nunca obtienen el mismo número.
func (a *Allocator) Allocate(ctx context.Context, role string) (entity.RoleID, error) {
	prefix := entity.RolePrefix(role)
	n, err := a.seq.Next(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("asignar role id (%s): %w", role, err)
	}
	return entity.NewRoleID(prefix, n), nil
}
