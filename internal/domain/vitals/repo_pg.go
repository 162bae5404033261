package vitals

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

const weightCols = `id, patient_id, weight_kg, recorded_by, recorded_at`

func scanWeight(row pgx.Row) (*WeightRecord, error) {
	var w WeightRecord
	err := row.Scan(&w.ID, &w.PatientID, &w.WeightKg, &w.RecordedBy, &w.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &w, err
}

func (r *repoPG) Create(ctx context.Context, w *WeightRecord) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_signs (id, patient_id, weight_kg, recorded_by)
		VALUES ($1,$2,$3,$4)`,
		w.ID, w.PatientID, w.WeightKg, w.RecordedBy)
	return err
}

func (r *repoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*WeightRecord, error) {
	return scanWeight(r.conn(ctx).QueryRow(ctx,
		`SELECT `+weightCols+` FROM vital_signs WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*WeightRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM vital_signs WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+weightCols+` FROM vital_signs WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*WeightRecord
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, w)
	}
	return items, total, rows.Err()
}
