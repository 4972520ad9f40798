package repos

import (
	"context"

	"prodx/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo reads submitter accounts. The storefront owns writes; Create
// exists for seeding and tests.
type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.GetContext(ctx, &u, `SELECT user_id,email,code_name FROM users WHERE user_id=?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, email, codeName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO users(email,code_name) VALUES(?,?)`, email, codeName)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
