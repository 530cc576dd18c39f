package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := NewDatabase(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestUser(t *testing.T, db *Database, name, email string) int {
	t.Helper()

	user, err := NewUserService(db).CreateUser(name, email, "password123")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}
