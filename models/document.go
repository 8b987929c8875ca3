package models

import "time"

// Document is metadata for an uploaded file. The blob itself lives in the
// configured document store under StoragePath (write-once, never versioned).
type Document struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Filename         string    `json:"filename" gorm:"size:255;not null"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255;not null"`
	StoragePath      string    `json:"file_path" gorm:"size:500;not null"`
	FileSize         int64     `json:"file_size" gorm:"not null"`
	MimeType         string    `json:"mime_type" gorm:"size:100;not null"`
	ClientID         *uint     `json:"client_id" gorm:"index"`
	ProjectID        *uint     `json:"project_id"`
	TaskID           *uint     `json:"task_id"`
	UploadedBy       uint      `json:"uploaded_by" gorm:"not null"`
	IsProcessed      bool      `json:"is_processed" gorm:"default:false"`
	ExtractedData    string    `json:"extracted_data" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
}
