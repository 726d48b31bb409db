package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Follows.Add(ctx, "aaa", f.petr.ID))

	err := f.svc.Follows.Add(ctx, "aaa", f.petr.ID)
	require.ErrorIs(t, err, ErrBadFollow)
	assert.Equal(t, KindConflict, AsError(err).Kind)

	err = f.svc.Follows.Add(ctx, "aaa", 999)
	require.ErrorIs(t, err, ErrNoUser)
	assert.Equal(t, KindNotFound, AsError(err).Kind)

	assert.ErrorIs(t, f.svc.Follows.Add(ctx, "nope", f.petr.ID), ErrNoUser)
}

func TestFollowService_SelfFollow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	keys := []string{"aaa", "sss"}
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("user-%d", i)
		_, err := f.svc.Users.Register(ctx, key, "x", key)
		require.NoError(t, err)
		keys = append(keys, key)
	}

	for _, key := range keys {
		actor, err := f.svc.Identity.Resolve(ctx, key)
		require.NoError(t, err)

		err = f.svc.Follows.Add(ctx, key, actor.ID)
		require.ErrorIs(t, err, ErrBadFollow, key)
		assert.Equal(t, KindBadRequest, AsError(err).Kind)
	}

	profile, err := f.svc.Users.GetByAPIKey(ctx, "aaa")
	require.NoError(t, err)
	assert.Empty(t, profile.Following)
}

func TestFollowService_Remove(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Follows.Add(ctx, "aaa", f.petr.ID))
	require.NoError(t, f.svc.Follows.Remove(ctx, "aaa", f.petr.ID))

	err := f.svc.Follows.Remove(ctx, "aaa", f.petr.ID)
	require.ErrorIs(t, err, ErrBadFollowDelete)
	assert.Equal(t, KindNotFound, AsError(err).Kind)

	assert.ErrorIs(t, f.svc.Follows.Remove(ctx, "nope", f.petr.ID), ErrNoUser)

	profile, err := f.svc.Users.GetByID(ctx, f.petr.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Followers)
}

func TestFollowService_EdgesAreDirected(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Follows.Add(ctx, "aaa", f.petr.ID))
	require.NoError(t, f.svc.Follows.Add(ctx, "sss", f.alex.ID))

	assert.ErrorIs(t, f.svc.Follows.Add(ctx, "sss", f.alex.ID), ErrBadFollow)
	require.NoError(t, f.svc.Follows.Remove(ctx, "sss", f.alex.ID))

	alex, err := f.svc.Users.GetByID(ctx, f.alex.ID)
	require.NoError(t, err)
	assert.Equal(t, []Author{{ID: f.petr.ID, Name: "Petr"}}, alex.Following)
	assert.Empty(t, alex.Followers)
}
