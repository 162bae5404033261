package mapping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsafe/medsafe/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const mappingCols = `id, rxnorm_code, english_name, portuguese_name, anvisa_code, notes, created_by, last_updated`

func scanMapping(row pgx.Row) (*Mapping, error) {
	var m Mapping
	err := row.Scan(&m.ID, &m.RxNormCode, &m.EnglishName, &m.PortugueseName,
		&m.AnvisaCode, &m.Notes, &m.CreatedBy, &m.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Mapping) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO rxnorm_anvisa_mappings (id, rxnorm_code, english_name, portuguese_name, anvisa_code, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.RxNormCode, m.EnglishName, m.PortugueseName, m.AnvisaCode, m.Notes, m.CreatedBy)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *repoPG) GetByRxNormCode(ctx context.Context, rxnormCode string) (*Mapping, error) {
	return scanMapping(r.conn(ctx).QueryRow(ctx,
		`SELECT `+mappingCols+` FROM rxnorm_anvisa_mappings WHERE rxnorm_code = $1`, rxnormCode))
}

func (r *repoPG) Update(ctx context.Context, m *Mapping) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE rxnorm_anvisa_mappings
		SET english_name=$2, portuguese_name=$3, anvisa_code=$4, notes=$5, last_updated=NOW()
		WHERE id = $1`,
		m.ID, m.EnglishName, m.PortugueseName, m.AnvisaCode, m.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM rxnorm_anvisa_mappings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Mapping, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM rxnorm_anvisa_mappings`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+mappingCols+` FROM rxnorm_anvisa_mappings ORDER BY english_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Mapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repoPG) SearchBilingual(ctx context.Context, term string, limit int) ([]*Mapping, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+mappingCols+` FROM rxnorm_anvisa_mappings
		 WHERE english_name ILIKE '%' || $1 || '%' OR portuguese_name ILIKE '%' || $1 || '%'
		 ORDER BY english_name LIMIT $2`,
		term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Mapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
