package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store is the process-wide store-access capability. It is created once
// at startup and passed to every controller and middleware that needs
// database access; nothing reads a package-level handle.
type Store struct {
	DB *gorm.DB
}

// Connect opens a MySQL-backed store from the given DSN.
func Connect(dsn string) (*Store, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Store{DB: gdb}, nil
}

// Open wraps an already-constructed dialector. Tests use it with an
// in-memory sqlite database.
func Open(dialector gorm.Dialector) (*Store, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Store{DB: gdb}, nil
}

// Sync migrates the schema.
func (s *Store) Sync() error {
	return s.DB.AutoMigrate(
		&User{},
		&Biodata{},
		&BiodataIDCounter{},
		&PremiumRequest{},
		&Payment{},
		&ConfirmedPayment{},
		&Favorite{},
		&SuccessStory{},
	)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
