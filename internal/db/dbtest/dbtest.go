// Package dbtest opens migrated in-memory databases for package tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/db"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

// Open returns a fresh sqlite database with the full schema. A single
// connection keeps every query on the same in-memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Fixture is a minimal set of rows a shift can point at.
type Fixture struct {
	User    models.User
	Client  models.Client
	Service models.Service
}

// Seed inserts one staff user, one active client with email and one priced
// service.
func Seed(t testing.TB, gdb *gorm.DB) Fixture {
	t.Helper()

	email := "ana@example.com"
	f := Fixture{
		User: models.User{Name: "Laura", Email: "laura@example.com", PasswordHash: "x"},
		Client: models.Client{
			Name:    "Ana",
			Email:   &email,
			CodArea: "11",
			Phone:   "55551234",
		},
		Service: models.Service{
			Name:  "Corte",
			Price: &models.Price{Amount: 1500, Currency: models.DefaultCurrency},
		},
	}

	for _, row := range []any{&f.User, &f.Client, &f.Service} {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}
	return f
}
