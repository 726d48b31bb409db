package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/config"
	"microblog/internal/store"
)

type fixture struct {
	svc   *Services
	store *store.Store
	alex  *store.User // api key "aaa", id 1
	petr  *store.User // api key "sss", id 2
	hello uint        // tweet 1, "Hello" by alex
}

func setupServices(t *testing.T) (*Services, *store.Store) {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "test.db")}, store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})

	svc := New(s)
	svc.Users.hashCost = bcrypt.MinCost
	return svc, s
}

// setupFixture mirrors the data the API has always been tested against:
// two users and one tweet by the first of them.
func setupFixture(t *testing.T) *fixture {
	t.Helper()
	svc, s := setupServices(t)
	ctx := context.Background()

	alex, err := svc.Users.Register(ctx, "Alex", "xxxxx", "aaa")
	require.NoError(t, err)
	petr, err := svc.Users.Register(ctx, "Petr", "xxxxx", "sss")
	require.NoError(t, err)
	hello, err := svc.Tweets.Create(ctx, "aaa", "Hello")
	require.NoError(t, err)

	return &fixture{svc: svc, store: s, alex: alex, petr: petr, hello: hello}
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.store.DB(context.Background()).Model(model).Count(&n).Error)
	return n
}
