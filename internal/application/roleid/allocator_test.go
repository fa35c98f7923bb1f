package roleid_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/application/roleid"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
)

func seedUsers(t *testing.T, store *memory.Store, role string, ids ...entity.RoleID) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, store.Users().Create(context.Background(), &entity.User{
			ID: string(id) + "-uid", Email: string(id) + "@agro.io", Role: role, RoleID: id,
		}))
	}
}

func TestAllocate_RolVacioEmpiezaEnUno(t *testing.T) {
	a := roleid.NewAllocator(memory.NewStore().RoleSequences())

	id, err := a.Allocate(context.Background(), entity.RoleWholesaler)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("w1"), id)
}

func TestAllocate_ContinuaSecuenciaContigua(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store, entity.RoleDealer, "d1", "d2", "d3")
	a := roleid.NewAllocator(store.RoleSequences())

	id, err := a.Allocate(context.Background(), entity.RoleDealer)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("d4"), id)
}

func TestAllocate_IgnoraIdsMalFormados(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store, entity.RoleFarmer, "f2", "fx9", "legacy")
	a := roleid.NewAllocator(store.RoleSequences())

	id, err := a.Allocate(context.Background(), entity.RoleFarmer)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleID("f3"), id)
}

func TestAllocate_RolDesconocidoUsaPrefijoU(t *testing.T) {
	a := roleid.NewAllocator(memory.NewStore().RoleSequences())

	first, err := a.Allocate(context.Background(), "Beekeeper")
	require.NoError(t, err)
	second, err := a.Allocate(context.Background(), "Miller")
	require.NoError(t, err)

	assert.Equal(t, entity.RoleID("u1"), first)
	assert.Equal(t, entity.RoleID("u2"), second)
}

func TestAllocate_ConcurrenteSinDuplicados(t *testing.T) {
	a := roleid.NewAllocator(memory.NewStore().RoleSequences())

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan entity.RoleID, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := a.Allocate(context.Background(), entity.RoleRetailer)
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[entity.RoleID]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicado: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen[entity.RoleID(fmt.Sprintf("r%d", n))])
}
