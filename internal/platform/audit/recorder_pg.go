package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsafe/medsafe/internal/platform/middleware"
)

// RecorderPG persists audit entries to the audit_logs table.
type RecorderPG struct {
	pool *pgxpool.Pool
}

func NewRecorderPG(pool *pgxpool.Pool) *RecorderPG {
	return &RecorderPG{pool: pool}
}

// RecordAccess writes one audit entry. It runs outside the request
// context so a cancelled request cannot drop its own audit trail.
func (r *RecorderPG) RecordAccess(entry middleware.AuditEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, user_roles, resource, patient_id, action,
			ip_address, user_agent, path, method, request_id, status_code, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		uuid.New(), entry.UserID, entry.UserRoles, entry.Resource, entry.PatientID, entry.Action,
		entry.IPAddress, entry.UserAgent, entry.Path, entry.Method, entry.RequestID,
		entry.StatusCode, entry.Timestamp)
	return err
}
