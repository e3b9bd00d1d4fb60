package upload

import "time"

// Upload is an intake attachment stored on the local filesystem.
type Upload struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path;uniqueIndex" json:"path"` // relative to the uploads dir
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
