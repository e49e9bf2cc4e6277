package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в слое transport)
var (
	ErrBadRequest       = errors.New("bad_request")        // 400
	ErrPayloadTooLarge  = errors.New("payload_too_large")  // 400: превышен лимит загрузки
	ErrNotFound         = errors.New("not_found")          // 404
	ErrStoreUnavailable = errors.New("store_unavailable")  // 500: S3 недоступен
	ErrIndexUnavailable = errors.New("index_unavailable")  // 500: Postgres недоступен
	ErrUnexpected       = errors.New("unexpected")         // 500

	// Проигрыш гонки за уникальный sha256. Наружу не выходит:
	// оркестратор превращает её в успешный duplicate-ответ.
	ErrDuplicateFingerprint = errors.New("duplicate_fingerprint")
)
