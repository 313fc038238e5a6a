package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fotolab/internal/config"
	"fotolab/internal/db"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

func TestSeed(t *testing.T) {
	gormDB, err := db.NewSQLite("file:seed_test?mode=memory&cache=shared", db.Options{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{BcryptCost: bcrypt.MinCost}
	ctx := context.Background()

	created, err := seed(ctx, gormDB, cfg, "root", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seed(ctx, gormDB, cfg, "root", "other")
	require.NoError(t, err)
	assert.False(t, created)

	users := repository.NewUserRepository(gormDB)
	user, err := users.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	role, err := users.RoleOf(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = seed(ctx, gormDB, cfg, "", "x")
	assert.Error(t, err)
}
