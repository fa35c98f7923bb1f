// backfill_roleids asigna un RoleID a los usuarios que aún no lo tienen (cuentas creadas antes
// de que existieran los identificadores por rol).
//
// Uso: go run ./cmd/backfill_roleids
// Usa la misma configuración que la API (DATABASE_URL o DB_*). Termina con código 1 ante cualquier error.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jhoicas/agrochain-api/internal/application/roleid"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agrochain-api/pkg/config"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	users := postgres.NewUserRepository(pool)
	allocator := roleid.NewAllocator(postgres.NewRoleSequenceRepository(pool))
	if _, err := backfill(ctx, users, allocator, os.Stdout); err != nil {
		log.Error().Err(err).Msg("backfill de role ids")
		pool.Close()
		os.Exit(1)
	}
}

// backfill asigna RoleID a los usuarios pendientes, del más antiguo al más nuevo, y escribe
// un resumen por rol en out. Se detiene en el primer error.
func backfill(ctx context.Context, users repository.UserRepository, allocator *roleid.Allocator, out io.Writer) (map[string]int, error) {
	pending, err := users.ListWithoutRoleID(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios sin role id: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(out, "Todos los usuarios ya tienen role id.")
		return map[string]int{}, nil
	}

	summary := make(map[string]int)
	for _, u := range pending {
		id, err := allocator.Allocate(ctx, u.Role)
		if err != nil {
			return summary, fmt.Errorf("asignar role id a %s: %w", u.Email, err)
		}
		assigned, err := users.AssignRoleID(ctx, u.ID, id)
		if err != nil {
			return summary, fmt.Errorf("guardar role id de %s: %w", u.Email, err)
		}
		if !assigned {
			// Lo asignó un login concurrente; el número reservado queda sin usar.
			fmt.Fprintf(out, "  %s ya tenía role id, omitido\n", u.Email)
			continue
		}
		summary[u.Role]++
		fmt.Fprintf(out, "  %s (%s) -> %s\n", u.Email, u.Role, id)
	}

	roles := make([]string, 0, len(summary))
	for r := range summary {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	fmt.Fprintln(out, "Resumen:")
	for _, r := range roles {
		fmt.Fprintf(out, "  %-20s %d\n", r, summary[r])
	}
	return summary, nil
}
