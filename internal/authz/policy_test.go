package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xoaadil/blogy/internal/authz"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, authz.RoleUser.IsValid())
	assert.True(t, authz.RoleAdmin.IsValid())
	assert.False(t, authz.Role("moderator").IsValid())
	assert.False(t, authz.Role("").IsValid())
}

func TestActor_IsAdmin(t *testing.T) {
	assert.True(t, authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}.IsAdmin())
	assert.False(t, authz.Actor{ID: uuid.New(), Role: authz.RoleUser}.IsAdmin())
}

func TestCanMutate(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	tests := []struct {
		name    string
		actor   authz.Actor
		ownerID uuid.UUID
		want    bool
	}{
		{
			name:    "owner can mutate own resource",
			actor:   authz.Actor{ID: ownerID, Role: authz.RoleUser},
			ownerID: ownerID,
			want:    true,
		},
		{
			name:    "admin can mutate someone else's resource",
			actor:   authz.Actor{ID: strangerID, Role: authz.RoleAdmin},
			ownerID: ownerID,
			want:    true,
		},
		{
			name:    "admin can mutate own resource",
			actor:   authz.Actor{ID: ownerID, Role: authz.RoleAdmin},
			ownerID: ownerID,
			want:    true,
		},
		{
			name:    "stranger cannot mutate",
			actor:   authz.Actor{ID: strangerID, Role: authz.RoleUser},
			ownerID: ownerID,
			want:    false,
		},
		{
			name:    "unknown role falls back to ownership only",
			actor:   authz.Actor{ID: strangerID, Role: authz.Role("moderator")},
			ownerID: ownerID,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanMutate(tt.actor, tt.ownerID))
		})
	}
}

func TestCanMutate_IsDeterministic(t *testing.T) {
	actor := authz.Actor{ID: uuid.New(), Role: authz.RoleUser}
	ownerID := uuid.New()

	first := authz.CanMutate(actor, ownerID)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, authz.CanMutate(actor, ownerID))
	}
}
