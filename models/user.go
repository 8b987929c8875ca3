package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// UserRole is the closed set of roles a user can hold.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleAccountant UserRole = "accountant"
	RoleAuditor    UserRole = "auditor"
	RoleDataEntry  UserRole = "data_entry"
	RoleClient     UserRole = "client"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleAuditor, RoleDataEntry, RoleClient:
		return true
	}
	return false
}

// UserStatus is the closed set of account states. Only active users may
// authenticate.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
	StatusPending   UserStatus = "pending"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusPending:
		return true
	}
	return false
}

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username       string     `json:"username" gorm:"size:100;uniqueIndex;not null"`
	FullName       string     `json:"full_name" gorm:"size:255;not null"`
	HashedPassword []byte     `json:"-" gorm:"not null"`
	Role           UserRole   `json:"role" gorm:"size:20;default:'client'"`
	Status         UserStatus `json:"status" gorm:"size:20;default:'pending'"`
	Phone          string     `json:"phone" gorm:"size:20"`
	Department     string     `json:"department" gorm:"size:100"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedBy      *uint      `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SetPassword hashes and stores the plaintext password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	u.HashedPassword = hashed
	return nil
}

// ComparePassword checks the plaintext password against the stored hash.
func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(u.HashedPassword, []byte(password))
}

// Permission names a single allowed action on a resource.
type Permission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Resource    string    `json:"resource" gorm:"size:100;not null"` // e.g. "client", "invoice"
	Action      string    `json:"action" gorm:"size:50;not null"`    // e.g. "create", "read"
	CreatedAt   time.Time `json:"created_at"`
}

// RolePermission grants a permission to every user holding a role.
type RolePermission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Role         UserRole  `json:"role" gorm:"size:20;not null"`
	PermissionID uint      `json:"permission_id" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditLog records who changed what. Old/new values are JSON snapshots.
type AuditLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Action     string         `json:"action" gorm:"size:100;not null"`
	Resource   string         `json:"resource" gorm:"size:100;not null"`
	ResourceID *uint          `json:"resource_id"`
	OldValues  datatypes.JSON `json:"old_values"`
	NewValues  datatypes.JSON `json:"new_values"`
	IPAddress  string         `json:"ip_address" gorm:"size:45"`
	UserAgent  string         `json:"user_agent" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
}
