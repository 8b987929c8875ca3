package models

import "time"

// Client is a customer of the practice. GSTIN must be unique across clients
// when present; the service layer enforces this with an explicit lookup and
// the uniqueIndex backs it up under concurrency.
type Client struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"size:255"`
	Phone          string    `json:"phone" gorm:"size:20"`
	GSTIN          *string   `json:"gstin" gorm:"size:15;uniqueIndex"`
	PAN            string    `json:"pan" gorm:"size:10"`
	Address        string    `json:"address" gorm:"type:text"`
	City           string    `json:"city" gorm:"size:100"`
	State          string    `json:"state" gorm:"size:100"`
	Pincode        string    `json:"pincode" gorm:"size:10"`
	AssignedUserID *uint     `json:"assigned_user_id"`
	Status         string    `json:"status" gorm:"size:20;default:'active'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
