package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account that owns recipes, tags and ingredients.
// Email is the login identifier and is stored with its domain lowercased.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"is_superuser"`
}

// BeforeCreate assigns an ID when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = NewUUID()
	}
	return nil
}

// SetPassword stores the bcrypt hash of raw.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

func (u User) String() string {
	return u.Email
}
