package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/file-vault/internal/domain"
)

// Результат одной попытки ingestion.
type Result struct {
	Record    domain.FileRecord
	Duplicate bool
}

// Orchestrator — единственное место, знающее весь конвейер:
// stage -> fingerprint -> проверка индекса -> (miss) put в S3 -> insert.
// Никаких in-process блокировок: гонку двух одинаковых загрузок судит
// уникальный индекс по sha256, оркестратор лишь корректно реагирует.
type Orchestrator struct {
	Log      *log.Logger
	Stager   Stager
	Index    domain.FileIndex
	Store    domain.BlobStore
	MaxBytes int64
}

// Ingest проводит один входящий поток через конвейер.
// Staged-копия освобождается на каждом терминальном пути.
func (o *Orchestrator) Ingest(ctx context.Context, r io.Reader, originalName, declaredMIME string) (Result, error) {
	staged, err := o.Stager.Stage(ctx, r, o.MaxBytes)
	if err != nil {
		// staging сам прибрал частичные байты
		return Result{}, err
	}
	defer staged.Release()

	src, err := staged.Open()
	if err != nil {
		return Result{}, fmt.Errorf("open staged: %w", err)
	}
	sha, _, err := Fingerprint(src)
	src.Close()
	if err != nil {
		return Result{}, fmt.Errorf("fingerprint: %w", err)
	}

	existing, found, err := o.Index.FindByFingerprint(ctx, sha)
	if err != nil {
		return Result{}, err
	}
	if found {
		o.Log.Printf("dedup hit sha256=%s id=%s", sha, existing.ID)
		return Result{Record: existing, Duplicate: true}, nil
	}

	mime := resolveMIME(declaredMIME, staged)

	src, err = staged.Open()
	if err != nil {
		return Result{}, fmt.Errorf("reopen staged: %w", err)
	}
	key, url, err := o.Store.Put(ctx, src, staged.Size(), domain.PutHints{
		OriginalName: originalName,
		MIMEType:     mime,
	})
	src.Close()
	if err != nil {
		// индекс не трогали — откатывать нечего
		return Result{}, err
	}

	rec := domain.FileRecord{
		ID:           uuid.New(),
		OriginalName: originalName,
		MIMEType:     mime,
		ByteSize:     staged.Size(),
		SHA256:       sha,
		CreatedAt:    time.Now().UTC(),
		StorageKey:   key,
		AccessURL:    url,
	}
	inserted, err := o.Index.Insert(ctx, rec)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFingerprint) {
			// Проиграли гонку конкурентной загрузке того же контента.
			// Только что залитый объект остаётся безвредной сиротой в S3;
			// не удаляем и не ретраим — правда уже в индексе.
			o.Log.Printf("lost insert race sha256=%s, orphaned key=%s", sha, key)
			winner, found, ferr := o.Index.FindByFingerprint(ctx, sha)
			if ferr != nil {
				return Result{}, ferr
			}
			if !found {
				return Result{}, fmt.Errorf("fingerprint vanished after duplicate insert: %w", domain.ErrUnexpected)
			}
			return Result{Record: winner, Duplicate: true}, nil
		}
		return Result{}, err
	}

	o.Log.Printf("ingested id=%s sha256=%s size=%d key=%s", inserted.ID, sha, inserted.ByteSize, key)
	return Result{Record: inserted, Duplicate: false}, nil
}

// resolveMIME: заявленный клиентом тип, иначе sniff по первым байтам,
// иначе octet-stream.
func resolveMIME(declared string, staged *Staged) string {
	if declared != "" {
		return declared
	}
	src, err := staged.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer src.Close()
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if n == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(head[:n])
}
