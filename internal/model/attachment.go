package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttachmentSize is enforced before any byte reaches the object store.
const MaxAttachmentSize = 10 << 20 // 10 MiB

type Attachment struct {
	ID           uuid.UUID `json:"id"`
	TaskID       uuid.UUID `json:"task_id"`
	UserID       string    `json:"user_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	StoragePath  string    `json:"storage_path"`
	CreatedAt    time.Time `json:"created_at"`
}
