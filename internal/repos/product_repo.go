package repos

import (
	"context"
	"database/sql"
	"fmt"

	"prodx/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ q querier }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{q: db} }

// WithTx returns a repo bound to tx.
func (r *ProductRepo) WithTx(tx *sqlx.Tx) *ProductRepo { return &ProductRepo{q: tx} }

// Recipient is the join of a product with its submitter.
type Recipient struct {
	ProductName string `db:"product_name"`
	Email       string `db:"email"`
	CodeName    string `db:"code_name"`
}

// MonthCount is one group of the monthly approval query.
type MonthCount struct {
	Month int `db:"month"`
	Count int `db:"count"`
}

// StatusTotal is one group of the per-status count query.
type StatusTotal struct {
	Status domain.Status `db:"status"`
	Total  int           `db:"total"`
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (int64, error) {
	if p.PicturesJSON == "" {
		p.PicturesJSON = "[]"
	}
	if p.CreatedAt == "" {
		res, err := r.q.ExecContext(ctx, `
			INSERT INTO products(product_name,product_description,product_pictures,category,status,user_id)
			VALUES(?,?,?,?,?,?)
		`, p.Name, p.Description, p.PicturesJSON, p.Category, p.Status, p.OwnerID)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products(product_name,product_description,product_pictures,category,status,user_id,created_at)
		VALUES(?,?,?,?,?,?,?)
	`, p.Name, p.Description, p.PicturesJSON, p.Category, p.Status, p.OwnerID, p.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.q.GetContext(ctx, &p, `
		SELECT product_id, product_name, product_description, product_pictures,
		       category, status, user_id, created_at
		FROM products
		WHERE product_id = ?
	`, id)
	return p, err
}

// SetStatus writes a review outcome. It reports false when no row matched.
func (r *ProductRepo) SetStatus(ctx context.Context, id int64, status domain.Status, reviewedBy string) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid status %d", int(status))
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET status = ?, reviewed_at = CURRENT_TIMESTAMP, reviewed_by = NULLIF(?, '')
		WHERE product_id = ?
	`, status, reviewedBy, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Recipient returns sql.ErrNoRows when the product or its owner is missing.
func (r *ProductRepo) Recipient(ctx context.Context, id int64) (Recipient, error) {
	var rc Recipient
	err := r.q.GetContext(ctx, &rc, `
		SELECT p.product_name, u.email, u.code_name
		FROM products p
		JOIN users u ON p.user_id = u.user_id
		WHERE p.product_id = ?
	`, id)
	return rc, err
}

// ListByStatus returns products in status, newest id first, with the
// submitter's code name when the submitter still exists.
func (r *ProductRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.PendingProduct, error) {
	out := []domain.PendingProduct{}
	err := r.q.SelectContext(ctx, &out, `
		SELECT
		  p.product_id, p.product_name, p.product_description, p.product_pictures,
		  p.category, p.status, p.user_id, p.created_at,
		  COALESCE(u.code_name, '') AS code_name
		FROM products p
		LEFT JOIN users u ON p.user_id = u.user_id
		WHERE p.status = ?
		ORDER BY p.product_id DESC
	`, status)
	return out, err
}

func (r *ProductRepo) CountByStatus(ctx context.Context) ([]StatusTotal, error) {
	var out []StatusTotal
	err := r.q.SelectContext(ctx, &out, `
		SELECT status, COUNT(*) AS total
		FROM products
		GROUP BY status
	`)
	return out, err
}

// CountByMonth groups products with status by month of created_at in year.
func (r *ProductRepo) CountByMonth(ctx context.Context, status domain.Status, year int) ([]MonthCount, error) {
	var out []MonthCount
	err := r.q.SelectContext(ctx, &out, `
		SELECT CAST(strftime('%m', created_at) AS INTEGER) AS month, COUNT(*) AS count
		FROM products
		WHERE status = ? AND strftime('%Y', created_at) = ?
		GROUP BY month
		ORDER BY month
	`, status, fmt.Sprintf("%04d", year))
	return out, err
}

// MinYear reports the earliest created_at year; ok is false for an empty table.
func (r *ProductRepo) MinYear(ctx context.Context) (year int, ok bool, err error) {
	var y sql.NullInt64
	if err := r.q.GetContext(ctx, &y, `
		SELECT MIN(CAST(strftime('%Y', created_at) AS INTEGER)) FROM products
	`); err != nil {
		return 0, false, err
	}
	if !y.Valid {
		return 0, false, nil
	}
	return int(y.Int64), true, nil
}
