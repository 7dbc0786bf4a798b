package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/config"
	"github.com/cruiseline/cruise-booking-api/internal/models"
	"gorm.io/gorm"
)

// SeedAdmin makes sure the bootstrap admin from the configuration exists with a
// hashed password. It does nothing when no admin password is configured.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set; skipping admin bootstrap")
		return nil
	}

	email := NormalizeEmail(cfg.AdminEmail)
	name := strings.TrimSpace(cfg.AdminUsername)
	if email == "" || name == "" {
		return errors.New("ADMIN_USERNAME and ADMIN_EMAIL are required to seed the admin user")
	}

	var admin models.User
	err := db.Where("email = ?", email).First(&admin).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil && admin.Role == models.RoleAdmin && CheckPassword(admin.Password, cfg.AdminPassword) {
		return nil
	}
	if err == nil && admin.Role != models.RoleAdmin {
		return errors.New("admin email is already used by a non-admin user")
	}

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin.Name = name
	admin.Email = email
	admin.Password = hash
	admin.Role = models.RoleAdmin
	if err := db.Save(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user %s bootstrapped", email)
	return nil
}
