package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type FileID = uuid.UUID

// Метаданные уникального файла. Одна запись на один content-хэш;
// после вставки запись никогда не меняется (write-once).
type FileRecord struct {
	ID           FileID    `json:"id"`
	OriginalName string    `json:"originalName"` // имя из первой загрузки
	MIMEType     string    `json:"mimeType"`
	ByteSize     int64     `json:"byteSize"`
	SHA256       string    `json:"sha256"` // hex-дайджест, ключ дедупликации
	CreatedAt    time.Time `json:"createdAt"`

	// Где лежит контент в S3/MinIO. Ключ непрозрачный и не связан с хэшем.
	StorageKey string `json:"publicId"`
	AccessURL  string `json:"url"`
}
