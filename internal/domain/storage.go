package domain

import (
	"context"
	"io"
)

// Подсказки для загрузки: имя и MIME клиента, на адресацию не влияют.
type PutHints struct {
	OriginalName string
	MIMEType     string
}

// Хранилище бинарного контента (S3/MinIO). Ключ назначает само хранилище
// в момент загрузки; дедупликацией занимается не оно, а FileIndex.
type BlobStore interface {
	// Put загружает поток одним объектом. Частичная запись никогда не
	// становится видимой под ключом. При ошибке — ErrStoreUnavailable.
	Put(ctx context.Context, r io.Reader, size int64, hints PutHints) (storageKey, accessURL string, err error)
	// BuildAccessURL строит ссылку на скачивание с подсказанным именем файла
	// (небезопасные символы заменяются на "_").
	BuildAccessURL(storageKey, suggestedFilename string) string
	Ping(ctx context.Context) error
}
