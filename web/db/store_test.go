package db_test

import (
	"fmt"
	"strings"
	"testing"

	"soulconnect/web/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	store, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := store.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, store.Sync())
	t.Cleanup(func() { store.Close() })
	return store
}
