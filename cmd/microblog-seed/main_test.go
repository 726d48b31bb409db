package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/config"
	"microblog/internal/service"
	"microblog/internal/store"
)

func TestRun(t *testing.T) {
	s, err := store.Open(config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "seed.db")}, store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := service.New(s)
	gofakeit.Seed(42)
	ctx := context.Background()

	require.NoError(t, run(ctx, logger, svc, 3, 2))

	var users int64
	require.NoError(t, s.DB(ctx).Model(&store.User{}).Count(&users).Error)
	assert.Equal(t, int64(5), users)

	alex, err := svc.Users.GetByAPIKey(ctx, "aaa")
	require.NoError(t, err)
	assert.Equal(t, "Alex", alex.Name)

	// a second run reuses the fixed accounts
	require.NoError(t, run(ctx, logger, svc, 0, 1))
	require.NoError(t, s.DB(ctx).Model(&store.User{}).Count(&users).Error)
	assert.Equal(t, int64(5), users)
}
