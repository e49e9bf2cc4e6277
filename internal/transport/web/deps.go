package web

import (
	"github.com/EgorLis/file-vault/internal/domain"
	"github.com/EgorLis/file-vault/internal/transport/web/v1/files"
)

// Deps — всё, что нужно HTTP-слою; собирается в app.Build и передаётся явно,
// никаких глобальных синглтонов.
type Deps struct {
	Ingestor files.Ingestor
	Index    domain.FileIndex
	Store    domain.BlobStore
	Cache    domain.Cache
}
