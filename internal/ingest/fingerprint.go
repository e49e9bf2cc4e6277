package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Fingerprint считает SHA-256 потока за один проход, не держа данные в памяти.
// Возвращает hex-дайджест и количество прочитанных байт.
func Fingerprint(r io.Reader) (string, int64, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
