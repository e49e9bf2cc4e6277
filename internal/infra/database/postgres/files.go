package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EgorLis/file-vault/internal/domain"
)

const uniqueViolation = "23505"

var fileColumns = []string{
	"id", "original_name", "storage_key", "access_url",
	"mime_type", "byte_size", "sha256", "created_at",
}

func (r *PGIndex) files() string { return fmt.Sprintf("%s.files", r.schema) }

// Insert атомарно добавляет запись. Нарушение уникального индекса по sha256 —
// это проигрыш гонки конкурентной загрузке, наружу уходит ErrDuplicateFingerprint.
func (r *PGIndex) Insert(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	q := r.qb().Insert(r.files()).
		Columns("id", "original_name", "storage_key", "access_url", "mime_type", "byte_size", "sha256").
		Values(rec.ID, rec.OriginalName, rec.StorageKey, rec.AccessURL, rec.MIMEType, rec.ByteSize, rec.SHA256).
		Suffix("RETURNING " + columnsCSV())

	sqlStr, args, _ := q.ToSql()
	r.logSQL("Insert", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	out, err := scanFile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Printf("Insert unique violation in %s sha256=%s", time.Since(start), rec.SHA256)
			return domain.FileRecord{}, domain.ErrDuplicateFingerprint
		}
		r.logger.Printf("Insert error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, fmt.Errorf("%w: insert: %v", domain.ErrIndexUnavailable, err)
	}
	r.logger.Printf("Insert ok in %s id=%s sha256=%s", time.Since(start), out.ID, out.SHA256)
	return out, nil
}

func (r *PGIndex) FindByFingerprint(ctx context.Context, sha string) (domain.FileRecord, bool, error) {
	q := r.qb().Select(fileColumns...).From(r.files()).Where(sq.Eq{"sha256": sha})
	return r.findOne(ctx, "FindByFingerprint", q)
}

func (r *PGIndex) FindByID(ctx context.Context, id domain.FileID) (domain.FileRecord, bool, error) {
	q := r.qb().Select(fileColumns...).From(r.files()).Where(sq.Eq{"id": id})
	return r.findOne(ctx, "FindByID", q)
}

func (r *PGIndex) findOne(ctx context.Context, op string, q sq.SelectBuilder) (domain.FileRecord, bool, error) {
	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	rec, err := scanFile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("%s miss in %s", op, time.Since(start))
		return domain.FileRecord{}, false, nil
	}
	if err != nil {
		r.logger.Printf("%s error after %s: %v", op, time.Since(start), err)
		return domain.FileRecord{}, false, fmt.Errorf("%w: %s: %v", domain.ErrIndexUnavailable, op, err)
	}
	r.logger.Printf("%s ok in %s id=%s", op, time.Since(start), rec.ID)
	return rec, true, nil
}

// ListAll выдаёт все записи, самые свежие первыми.
func (r *PGIndex) ListAll(ctx context.Context) ([]domain.FileRecord, error) {
	q := r.qb().Select(fileColumns...).From(r.files()).
		OrderBy("created_at DESC", "id DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListAll", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ListAll query error after %s: %v", time.Since(start), err)
		return nil, fmt.Errorf("%w: list: %v", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	var res []domain.FileRecord
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			r.logger.Printf("ListAll scan error: %v", err)
			return nil, fmt.Errorf("%w: list scan: %v", domain.ErrIndexUnavailable, err)
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ListAll rows error: %v", err)
		return nil, fmt.Errorf("%w: list rows: %v", domain.ErrIndexUnavailable, err)
	}
	r.logger.Printf("ListAll ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func columnsCSV() string {
	out := ""
	for i, c := range fileColumns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func scanFile(row pgx.Row) (domain.FileRecord, error) {
	var rec domain.FileRecord
	err := row.Scan(
		&rec.ID, &rec.OriginalName, &rec.StorageKey, &rec.AccessURL,
		&rec.MIMEType, &rec.ByteSize, &rec.SHA256, &rec.CreatedAt,
	)
	return rec, err
}
