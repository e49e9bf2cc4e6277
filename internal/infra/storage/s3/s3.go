package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"regexp"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/file-vault/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	logger *log.Logger
	bucket string
	base   string // scheme://endpoint
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	s := &Storage{
		cl:     cl,
		logger: logger,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
	}
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("bucket check failed: %v", err)
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

// Put загружает поток одним объектом под свежим ключом "uploads/<uuid>".
// Ключ намеренно не зависит от содержимого: адресацией по хэшу занимается
// индекс метаданных, а не хранилище.
func (s *Storage) Put(ctx context.Context, r io.Reader, size int64, hints domain.PutHints) (string, string, error) {
	key := "uploads/" + uuid.NewString()

	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: hints.MIMEType,
		UserMetadata: map[string]string{
			"original-name": sanitizeFilename(hints.OriginalName),
		},
	})
	if err != nil {
		s.logger.Printf("put %q failed: %v", key, err)
		return "", "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	s.logger.Printf("put ok key=%s size=%d", key, info.Size)
	return key, s.objectURL(key), nil
}

// BuildAccessURL строит ссылку на скачивание: объект отдаётся как attachment
// с подсказанным именем. Небезопасные для имени файла символы заменяются на "_".
func (s *Storage) BuildAccessURL(storageKey, suggestedFilename string) string {
	safe := sanitizeFilename(suggestedFilename)
	disposition := fmt.Sprintf("attachment; filename=%q", safe)
	return s.objectURL(storageKey) + "?response-content-disposition=" + url.QueryEscape(disposition)
}

func (s *Storage) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.base, s.bucket, key)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
