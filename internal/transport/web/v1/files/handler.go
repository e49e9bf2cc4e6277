package files

import (
	"context"
	"io"
	"log"

	"github.com/EgorLis/file-vault/internal/domain"
	"github.com/EgorLis/file-vault/internal/ingest"
)

// Ingestor — конвейер загрузки (stage -> fingerprint -> dedup -> store -> index).
type Ingestor interface {
	Ingest(ctx context.Context, r io.Reader, originalName, declaredMIME string) (ingest.Result, error)
}

// URLBuilder отдаёт ссылку на скачивание с подсказанным именем файла.
type URLBuilder interface {
	BuildAccessURL(storageKey, suggestedFilename string) string
}

type Handler struct {
	Log      *log.Logger
	Ingestor Ingestor
	Index    domain.FileIndex
	Store    URLBuilder
	Cache    domain.Cache // опционален: при недоступности деградируем к индексу
}

const cacheTTLSeconds = 300
