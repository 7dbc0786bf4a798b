package handlers

import (
	"errors"
	"testing"

	"github.com/cruiseline/cruise-booking-api/internal/database"
	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: models.RoleCustomer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func seedCruise(t *testing.T, db *gorm.DB, title string) models.Cruise {
	t.Helper()
	cruise := models.Cruise{
		Title:    title,
		Price:    899.99,
		Currency: models.DefaultCruiseCurrency,
		Location: "Bangkok",
		IsActive: true,
		Rating:   models.DefaultCruiseRating,
	}
	if err := db.Create(&cruise).Error; err != nil {
		t.Fatalf("failed to create cruise: %v", err)
	}
	return cruise
}

func reloadCruise(t *testing.T, db *gorm.DB, id string) models.Cruise {
	t.Helper()
	var cruise models.Cruise
	if err := db.First(&cruise, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload cruise: %v", err)
	}
	return cruise
}

// expectError checks the status and, when msg is not empty, the message of err.
func expectError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var se huma.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected error with status %d, got %v", status, err)
	}
	if se.GetStatus() != status {
		t.Errorf("expected status %d, got %d (%v)", status, se.GetStatus(), err)
	}
	if msg != "" && err.Error() != msg {
		t.Errorf("expected message %q, got %q", msg, err.Error())
	}
}

func ptr[T any](v T) *T {
	return &v
}
