package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/application/roleid"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
)

func TestBackfill(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := store.Users()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, u := range []struct{ email, role, roleID string }{
		{"w-old@agro.test", entity.RoleWholesaler, "w1"},
		{"w-new@agro.test", entity.RoleWholesaler, ""},
		{"d@agro.test", entity.RoleDealer, ""},
		{"x@agro.test", "Curious", ""},
	} {
		require.NoError(t, users.Create(ctx, &entity.User{
			ID: u.email, Email: u.email, PasswordHash: "x", Role: u.role,
			RoleID: entity.RoleID(u.roleID), CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	var out bytes.Buffer
	summary, err := backfill(ctx, users, roleid.NewAllocator(store.RoleSequences()), &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{entity.RoleWholesaler: 1, entity.RoleDealer: 1, "Curious": 1}, summary)

	w, err := users.GetByEmail(ctx, "w-new@agro.test")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("w2"), w.RoleID)
	x, err := users.GetByEmail(ctx, "x@agro.test")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("u1"), x.RoleID)
	assert.Contains(t, out.String(), "Resumen:")

	out.Reset()
	summary, err = backfill(ctx, users, roleid.NewAllocator(store.RoleSequences()), &out)
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.Contains(t, out.String(), "ya tienen role id")
}
