package repo

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// newTestDB открывает SQLite (modernc.org/sqlite) во временном каталоге и применяет миграции
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(SQLitePrefix + filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("failed to init sqlite (modernc): %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
