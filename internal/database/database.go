package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

type Database struct {
	Conn *gorm.DB
}

// NewDatabase opens the SQLite database and migrates the schema. The DSN
// carries any pragmas (the default config enables foreign keys there).
func NewDatabase(dsn string) (*Database, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Message{},
		&models.Session{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{Conn: conn}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
