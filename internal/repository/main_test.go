package repository

import (
	"fmt"
	"testing"
	"time"

	"filmgraph/internal/database"
	"filmgraph/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory SQLite database with the full
// schema. TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey, same as the postgres driver.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// A second pooled connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    login + "@test.local",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", login, err)
	}
	return user
}

func mustCreateFilm(t *testing.T, db *gorm.DB, name string) *models.Film {
	t.Helper()
	film := &models.Film{
		Name:        name,
		Description: "test film",
		ReleaseDate: time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:    120,
	}
	if err := db.Create(film).Error; err != nil {
		t.Fatalf("Failed to create film %s: %v", name, err)
	}
	return film
}

func mustCreateUsers(t *testing.T, db *gorm.DB, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, mustCreateUser(t, db, fmt.Sprintf("user%d", i)))
	}
	return users
}

func mustCreateFilms(t *testing.T, db *gorm.DB, n int) []*models.Film {
	t.Helper()
	films := make([]*models.Film, 0, n)
	for i := 1; i <= n; i++ {
		films = append(films, mustCreateFilm(t, db, fmt.Sprintf("Film %d", i)))
	}
	return films
}
