package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/EgorLis/file-vault/internal/domain"
)

// ---- фейки индекса и хранилища ----

type memIndex struct {
	mu     sync.Mutex
	bySHA  map[string]domain.FileRecord
	byID   map[domain.FileID]domain.FileRecord
	failOn error // если задана — все вызовы падают этой ошибкой

	inserts int
}

func newMemIndex() *memIndex {
	return &memIndex{
		bySHA: make(map[string]domain.FileRecord),
		byID:  make(map[domain.FileID]domain.FileRecord),
	}
}

func (m *memIndex) Close()                           {}
func (m *memIndex) Ping(context.Context) error       { return m.failOn }

func (m *memIndex) FindByFingerprint(_ context.Context, sha string) (domain.FileRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return domain.FileRecord{}, false, m.failOn
	}
	rec, ok := m.bySHA[sha]
	return rec, ok, nil
}

func (m *memIndex) Insert(_ context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return domain.FileRecord{}, m.failOn
	}
	if _, exists := m.bySHA[rec.SHA256]; exists {
		return domain.FileRecord{}, domain.ErrDuplicateFingerprint
	}
	m.bySHA[rec.SHA256] = rec
	m.byID[rec.ID] = rec
	m.inserts++
	return rec, nil
}

func (m *memIndex) FindByID(_ context.Context, id domain.FileID) (domain.FileRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[id]
	return rec, ok, nil
}

func (m *memIndex) ListAll(context.Context) ([]domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.FileRecord, 0, len(m.bySHA))
	for _, rec := range m.bySHA {
		out = append(out, rec)
	}
	return out, nil
}

type memStore struct {
	mu   sync.Mutex
	puts int
	fail bool
}

func (s *memStore) Put(_ context.Context, r io.Reader, _ int64, _ domain.PutHints) (string, string, error) {
	s.mu.Lock()
	s.puts++
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return "", "", domain.ErrStoreUnavailable
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", "", err
	}
	key := "uploads/" + uuid.NewString()
	return key, "http://store.local/" + key, nil
}

func (s *memStore) BuildAccessURL(key, name string) string {
	return fmt.Sprintf("http://store.local/%s?filename=%s", key, name)
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func newTestOrchestrator(t *testing.T, idx domain.FileIndex, store domain.BlobStore, limit int64) (*Orchestrator, string) {
	t.Helper()
	dir := t.TempDir()
	return &Orchestrator{
		Log:      log.New(io.Discard, "", 0),
		Stager:   &FileStager{Dir: dir},
		Index:    idx,
		Store:    store,
		MaxBytes: limit,
	}, dir
}

// ---- сценарии ----

func TestIngestNewContent(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	res, err := o.Ingest(context.Background(), strings.NewReader("hello-world-12345"), "report.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Duplicate {
		t.Fatal("first upload reported as duplicate")
	}
	rec := res.Record
	if rec.ByteSize != 17 {
		t.Fatalf("expected byteSize 17, got %d", rec.ByteSize)
	}
	if rec.SHA256 != "d3accb4dff43419be6abe878298409fb979253254c68d119c66e321614345495" {
		t.Fatalf("unexpected fingerprint %s", rec.SHA256)
	}
	if rec.OriginalName != "report.pdf" || rec.MIMEType != "application/pdf" {
		t.Fatalf("unexpected name/mime: %q %q", rec.OriginalName, rec.MIMEType)
	}
	if rec.StorageKey == "" || rec.AccessURL == "" {
		t.Fatalf("storage fields not populated: %#v", rec)
	}
	if store.putCount() != 1 || idx.inserts != 1 {
		t.Fatalf("expected one put and one insert, got %d/%d", store.putCount(), idx.inserts)
	}
	assertEmptyDir(t, dir)
}

func TestIngestDuplicateShortCircuits(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	first, err := o.Ingest(context.Background(), strings.NewReader("same-bytes"), "a.bin", "")
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	second, err := o.Ingest(context.Background(), strings.NewReader("same-bytes"), "b.bin", "")
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("second upload of same bytes not reported as duplicate")
	}
	if second.Record.ID != first.Record.ID {
		t.Fatalf("duplicate resolved to different record: %s vs %s", second.Record.ID, first.Record.ID)
	}
	if second.Record.OriginalName != "a.bin" {
		t.Fatalf("originalName changed on duplicate: %q", second.Record.OriginalName)
	}
	// дубликат не должен трогать хранилище
	if store.putCount() != 1 {
		t.Fatalf("expected single put, got %d", store.putCount())
	}
	assertEmptyDir(t, dir)
}

func TestIngestPayloadTooLarge(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 16)

	_, err := o.Ingest(context.Background(), bytes.NewReader(bytes.Repeat([]byte("z"), 64)), "big.bin", "")
	if !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	// ни индекс, ни хранилище не должны быть затронуты
	if store.putCount() != 0 || idx.inserts != 0 {
		t.Fatalf("store/index touched on oversize payload: %d/%d", store.putCount(), idx.inserts)
	}
	assertEmptyDir(t, dir)
}

func TestIngestStoreFailure(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{fail: true}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	_, err := o.Ingest(context.Background(), strings.NewReader("payload"), "f.bin", "")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if idx.inserts != 0 {
		t.Fatal("index mutated despite store failure")
	}
	assertEmptyDir(t, dir)
}

func TestIngestIndexFailure(t *testing.T) {
	idx := newMemIndex()
	idx.failOn = domain.ErrIndexUnavailable
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	_, err := o.Ingest(context.Background(), strings.NewReader("payload"), "f.bin", "")
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
	assertEmptyDir(t, dir)
}

// Проигрыш гонки на Insert сводится к duplicate-успеху с записью победителя.
type racingIndex struct {
	*memIndex
	winner domain.FileRecord
	once   sync.Once
}

func (r *racingIndex) Insert(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	// победитель «вклинивается» между нашим FindByFingerprint и Insert
	r.once.Do(func() {
		r.winner.SHA256 = rec.SHA256
		r.memIndex.bySHA[rec.SHA256] = r.winner
		r.memIndex.byID[r.winner.ID] = r.winner
	})
	return r.memIndex.Insert(ctx, rec)
}

func TestIngestLosesInsertRace(t *testing.T) {
	idx := &racingIndex{
		memIndex: newMemIndex(),
		winner:   domain.FileRecord{ID: uuid.New(), OriginalName: "winner.bin"},
	}
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	res, err := o.Ingest(context.Background(), strings.NewReader("contested"), "loser.bin", "")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !res.Duplicate {
		t.Fatal("lost race not reported as duplicate")
	}
	if res.Record.ID != idx.winner.ID {
		t.Fatalf("expected winner record %s, got %s", idx.winner.ID, res.Record.ID)
	}
	assertEmptyDir(t, dir)
}

func TestIngestConcurrentIdenticalContent(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{}
	o, dir := newTestOrchestrator(t, idx, store, 1<<20)

	const workers = 8
	payload := bytes.Repeat([]byte("identical-content-"), 1024)

	var wg sync.WaitGroup
	results := make([]Result, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = o.Ingest(context.Background(), bytes.NewReader(payload), fmt.Sprintf("copy-%d.bin", i), "")
		}(i)
	}
	wg.Wait()

	originals := 0
	var id domain.FileID
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !results[i].Duplicate {
			originals++
			id = results[i].Record.ID
		}
	}
	if originals != 1 {
		t.Fatalf("expected exactly one non-duplicate result, got %d", originals)
	}
	for i := 0; i < workers; i++ {
		if results[i].Record.ID != id {
			t.Fatalf("worker %d converged on different record %s", i, results[i].Record.ID)
		}
	}
	if idx.inserts != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", idx.inserts)
	}
	assertEmptyDir(t, dir)
}

func TestIngestSniffsMIMEWhenUndeclared(t *testing.T) {
	idx := newMemIndex()
	store := &memStore{}
	o, _ := newTestOrchestrator(t, idx, store, 1<<20)

	res, err := o.Ingest(context.Background(), strings.NewReader("%PDF-1.7 some pdf body"), "doc.pdf", "")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Record.MIMEType != "application/pdf" {
		t.Fatalf("expected sniffed application/pdf, got %q", res.Record.MIMEType)
	}
}
