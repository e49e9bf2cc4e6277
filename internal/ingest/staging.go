package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/EgorLis/file-vault/internal/domain"
)

// Stager принимает входящий поток во временное место до решения о судьбе
// байтов (дубликат/загрузка в S3). Копия принадлежит одной попытке ingestion
// и обязана быть освобождена на любом исходе.
type Stager interface {
	Stage(ctx context.Context, r io.Reader, limit int64) (*Staged, error)
}

// Staged — scoped-ресурс одной попытки: размер, повторно открываемый поток
// и идемпотентный Release.
type Staged struct {
	size int64
	open func() (io.ReadCloser, error)

	mu       sync.Mutex
	released bool
	release  func() error
}

func (s *Staged) Size() int64 { return s.size }

// Open возвращает свежий поток от начала staged-байтов.
// Можно вызывать несколько раз (хэш + загрузка в S3).
func (s *Staged) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return nil, fmt.Errorf("staged upload already released")
	}
	return s.open()
}

// Release удаляет временную копию. Повторные вызовы — no-op.
func (s *Staged) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	_ = s.release()
}

// FileStager складывает входящий поток во временный файл в scratch-каталоге.
type FileStager struct {
	Dir string // пусто — системный tmp
}

// Stage копирует r во временный файл, следя за лимитом по ходу чтения.
// Превышение — ErrPayloadTooLarge, частичный файл удаляется сразу.
// Отмена ctx тоже прерывает копирование и чистит за собой.
func (fs *FileStager) Stage(ctx context.Context, r io.Reader, limit int64) (*Staged, error) {
	f, err := os.CreateTemp(fs.Dir, "staged-*")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	path := f.Name()

	discard := func() {
		f.Close()
		os.Remove(path)
	}

	var written int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			discard()
			return nil, err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			written += int64(n)
			if limit > 0 && written > limit {
				discard()
				return nil, domain.ErrPayloadTooLarge
			}
			if _, werr := f.Write(buf[:n]); werr != nil {
				discard()
				return nil, fmt.Errorf("write staging file: %w", werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			discard()
			return nil, fmt.Errorf("read upload stream: %w", rerr)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close staging file: %w", err)
	}

	return &Staged{
		size: written,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
		release: func() error { return os.Remove(path) },
	}, nil
}
