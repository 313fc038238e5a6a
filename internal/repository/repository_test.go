package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fotolab/internal/db"
	"fotolab/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), db.Options{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), gormDB))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, username, role string) *model.User {
	t.Helper()

	var r model.Role
	require.NoError(t, gormDB.Where("name = ?", role).First(&r).Error)

	user := &model.User{Username: username, PasswordHash: "x", RoleID: r.ID}
	require.NoError(t, gormDB.Omit("Role").Create(user).Error)
	return user
}
