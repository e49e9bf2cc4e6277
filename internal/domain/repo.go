package domain

import "context"

// Индекс метаданных — единственный источник правды "видели ли мы такой контент".
// Уникальность sha256 обеспечивает сама БД, а не проверка на чтении:
// две конкурентные загрузки могут обе промахнуться по FindByFingerprint.
type FileIndex interface {
	Close()
	Ping(context.Context) error

	FindByFingerprint(ctx context.Context, sha256hex string) (FileRecord, bool, error)
	// Insert атомарна: либо запись становится видимой целиком, либо ничего.
	// При нарушении уникальности sha256 возвращает ErrDuplicateFingerprint.
	Insert(ctx context.Context, rec FileRecord) (FileRecord, error)
	FindByID(ctx context.Context, id FileID) (FileRecord, bool, error)
	// Сначала самые свежие.
	ListAll(ctx context.Context) ([]FileRecord, error)
}
