package store

import (
	"errors"
	"log"

	"zyra/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin seeds the configured admin account on startup so a fresh
// deployment can log in. Existing accounts are left alone.
func EnsureAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}

	var existing models.AdminUser
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking admin account: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	if err := db.Create(&models.AdminUser{Email: email, PasswordHash: string(hash)}).Error; err != nil {
		log.Printf("Error seeding admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}

// AuthenticateAdmin checks credentials and returns the account on success.
func AuthenticateAdmin(db *gorm.DB, email, password string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}
