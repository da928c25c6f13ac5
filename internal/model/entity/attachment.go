package entity

import (
	"time"
)

// PartAttachment links an uploaded file (datasheet, drawing, ...) to a part.
// The file itself lives in object storage under FileKey.
type PartAttachment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	PartID      string    `json:"part_id" gorm:"size:32;not null;index"`
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	FileKey     string    `json:"-" gorm:"size:512;not null"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type,omitempty" gorm:"size:100"`
	Comment     string    `json:"comment,omitempty" gorm:"size:250"`
	UploadedBy  string    `json:"uploaded_by,omitempty" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PartAttachment) TableName() string {
	return "part_attachments"
}
