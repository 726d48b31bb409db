package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	user, err := svc.Users.Register(ctx, "Alex", "secret", "aaa")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "aaa", user.APIKey)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, CheckPassword(user, "secret"))
	assert.False(t, CheckPassword(user, "wrong"))

	t.Run("DuplicateAPIKey", func(t *testing.T) {
		_, err := svc.Users.Register(ctx, "Other", "x", "aaa")
		require.ErrorIs(t, err, ErrBadUser)
		assert.Equal(t, KindConflict, AsError(err).Kind)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.Users.Register(ctx, "", "x", "bbb")
		require.ErrorIs(t, err, ErrBadUser)
		assert.Equal(t, KindBadRequest, AsError(err).Kind)

		_, err = svc.Users.Register(ctx, "Bob", "x", "")
		assert.ErrorIs(t, err, ErrBadUser)
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		_, err := svc.Users.Register(ctx, "Long", strings.Repeat("p", 80), "long-key")
		require.ErrorIs(t, err, ErrBadUser)
		assert.Equal(t, KindBadRequest, AsError(err).Kind)

		_, err = svc.Users.GetByAPIKey(ctx, "long-key")
		assert.ErrorIs(t, err, ErrNoUser)

		_, err = svc.Users.Register(ctx, "Long", strings.Repeat("p", 72), "long-key")
		assert.NoError(t, err)
	})
}

func TestUserService_Profiles(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ivan, err := f.svc.Users.Register(ctx, "Ivan", "x", "iii")
	require.NoError(t, err)

	require.NoError(t, f.svc.Follows.Add(ctx, "aaa", f.petr.ID))
	require.NoError(t, f.svc.Follows.Add(ctx, "iii", f.petr.ID))
	require.NoError(t, f.svc.Follows.Add(ctx, "sss", ivan.ID))

	petr, err := f.svc.Users.GetByID(ctx, f.petr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Petr", petr.Name)
	assert.Equal(t, []Author{{ID: f.alex.ID, Name: "Alex"}, {ID: ivan.ID, Name: "Ivan"}}, petr.Followers)
	assert.Equal(t, []Author{{ID: ivan.ID, Name: "Ivan"}}, petr.Following)

	me, err := f.svc.Users.GetByAPIKey(ctx, "aaa")
	require.NoError(t, err)
	assert.Equal(t, f.alex.ID, me.ID)
	assert.Equal(t, []Author{{ID: f.petr.ID, Name: "Petr"}}, me.Following)
	assert.NotNil(t, me.Followers)
	assert.Empty(t, me.Followers)

	_, err = f.svc.Users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = f.svc.Users.GetByAPIKey(ctx, "nope")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestMediaService_Register(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	first, err := svc.Media.Register(ctx, "/static/media_files/a.png")
	require.NoError(t, err)
	second, err := svc.Media.Register(ctx, "/static/media_files/b.png")
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	_, err = svc.Media.Register(ctx, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAsError(t *testing.T) {
	assert.Same(t, ErrNoTweet, AsError(ErrNoTweet))
	assert.Same(t, ErrInternal, AsError(errors.New("disk on fire")))

	wrapped := AsError(errors.Join(errors.New("ctx"), ErrBadLike))
	assert.Equal(t, TypeBadLike, wrapped.Type)
	assert.Equal(t, "BadLike: Such like already exists", ErrBadLike.Error())
}
