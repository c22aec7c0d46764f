package repo

import (
	"UserPrefs/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// SQLitePrefix: префикс DSN, выбирающий встроенный SQLite (modernc.org/sqlite) вместо Postgres.
const SQLitePrefix = "sqlite:"

// InitDB открывает БД по DSN и применяет миграции.
// "sqlite:<path>" открывает SQLite, любая другая строка считается DSN Postgres.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: path}
	} else {
		dial = postgres.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
