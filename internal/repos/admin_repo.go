package repos

import (
	"context"

	"prodx/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdminRepo struct{ DB *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{DB: db} }

func (r *AdminRepo) ByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.GetContext(ctx, &a, `SELECT id,email,name,password_hash FROM admins WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) BindSession(ctx context.Context, sid, adminID string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO admin_sessions(id,admin_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET admin_id=excluded.admin_id,last_seen=CURRENT_TIMESTAMP`, sid, adminID)
	return err
}

func (r *AdminRepo) SessionAdmin(ctx context.Context, sid string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.GetContext(ctx, &a, `
      SELECT a.id,a.email,a.name,a.password_hash
      FROM admin_sessions s
      JOIN admins a ON a.id=s.admin_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE admin_sessions SET admin_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
