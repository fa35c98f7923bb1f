package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

func TestParseDealerRequestStatus(t *testing.T) {
	for _, s := range []string{"requested", "accepted", "rejected"} {
		st, ok := entity.ParseDealerRequestStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, string(st))
	}
	_, ok := entity.ParseDealerRequestStatus("Accepted")
	assert.False(t, ok)
	_, ok = entity.ParseDealerRequestStatus("shipped")
	assert.False(t, ok)
}

func TestParseRetailerStatusUpdate(t *testing.T) {
	for _, s := range []string{"accepted", "rejected", "cancelled"} {
		_, ok := entity.ParseRetailerStatusUpdate(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"shipped", "requested", ""} {
		_, ok := entity.ParseRetailerStatusUpdate(s)
		assert.False(t, ok, s)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	_, ok := entity.ParsePaymentStatus("done")
	assert.True(t, ok)
	_, ok = entity.ParsePaymentStatus("paid")
	assert.False(t, ok)
}

func TestAdminMessage_AddressedTo(t *testing.T) {
	broadcast := &entity.AdminMessage{Roles: []string{"Farmer", "Dealer"}}
	targeted := &entity.AdminMessage{Roles: []string{"Farmer"}, TargetUsers: []string{"u-1"}}

	assert.True(t, broadcast.AddressedTo("Farmer", "u-9"))
	assert.False(t, broadcast.AddressedTo("Retailer", ""))
	assert.True(t, targeted.AddressedTo("Farmer", "u-1"))
	assert.False(t, targeted.AddressedTo("Farmer", "u-2"))
	assert.True(t, targeted.AddressedTo("", ""))
}

func TestLevelForStatus(t *testing.T) {
	assert.Equal(t, entity.LogLevelInfo, entity.LevelForStatus(201))
	assert.Equal(t, entity.LogLevelWarning, entity.LevelForStatus(404))
	assert.Equal(t, entity.LogLevelError, entity.LevelForStatus(503))
}
