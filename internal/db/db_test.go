package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotolab/internal/config"
	"fotolab/internal/model"
)

func TestMigrate_SeedsRolesOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := NewSQLite(dsn, Options{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, gormDB))
	require.NoError(t, Migrate(ctx, gormDB))

	var roles []model.Role
	require.NoError(t, gormDB.Order("id").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, model.RoleAdmin, roles[0].Name)
	assert.Equal(t, model.RoleUser, roles[1].Name)
}

func TestReset_DropsTables(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := NewSQLite(dsn, Options{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, gormDB))
	require.NoError(t, Reset(ctx, gormDB))

	for _, table := range Tables() {
		assert.False(t, gormDB.Migrator().HasTable(table))
	}
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", withForeignKeys("app.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", withForeignKeys("file:x?mode=memory"))
}

func TestOpen_Driver(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")}
	gormDB, err := Open(cfg, 0)
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, sqlDB.Ping())

	_, err = Open(&config.Config{DBDriver: "oracle"}, 0)
	assert.Error(t, err)
}
