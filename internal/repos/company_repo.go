package repos

import (
	"context"

	"prodx/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CompanyRepo struct{ db *sqlx.DB }

func NewCompanyRepo(db *sqlx.DB) *CompanyRepo { return &CompanyRepo{db: db} }

func (r *CompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	out := []domain.Company{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, company, address, email_address, contact_number
		FROM company
		ORDER BY company ASC
	`)
	return out, err
}

func (r *CompanyRepo) Create(ctx context.Context, c domain.Company) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO company(company, address, email_address, contact_number)
		VALUES (?, ?, ?, ?)
	`, c.Name, c.Address, c.EmailAddress, c.ContactNumber)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes a company; it reports whether a row existed.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM company WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
