package repos

import (
	"context"

	"prodx/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ q querier }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{q: db} }

func (r *NotificationRepo) WithTx(tx *sqlx.Tx) *NotificationRepo { return &NotificationRepo{q: tx} }

func (r *NotificationRepo) Insert(ctx context.Context, n domain.Notification) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications
		  (id, product_id, decision, to_email, to_name, product_name, subject, body, state, last_error, created_at)
		VALUES
		  (?,  ?,          ?,        ?,        ?,       ?,            ?,       ?,    ?,     NULLIF(?, ''), CURRENT_TIMESTAMP)
	`, n.ID, n.ProductID, n.Decision, n.ToEmail, n.ToName, n.ProductName, n.Subject, n.Body, n.State, n.LastError)
	return err
}

func (r *NotificationRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE notifications SET state = 'sent', last_error = NULL, sent_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	return err
}

func (r *NotificationRepo) MarkFailed(ctx context.Context, id, reason string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE notifications SET state = 'failed', last_error = ? WHERE id = ?
	`, reason, id)
	return err
}

const notificationCols = `
	id, product_id, decision, to_email, to_name, product_name, subject, body, state,
	COALESCE(last_error,'') AS last_error, created_at, COALESCE(sent_at,'') AS sent_at`

func (r *NotificationRepo) Get(ctx context.Context, id string) (domain.Notification, error) {
	var n domain.Notification
	err := r.q.GetContext(ctx, &n, `SELECT `+notificationCols+` FROM notifications WHERE id = ?`, id)
	return n, err
}

func (r *NotificationRepo) ListLatest(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Notification{}
	err := r.q.SelectContext(ctx, &out, `
		SELECT `+notificationCols+`
		FROM notifications
		ORDER BY datetime(created_at) DESC, rowid DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *NotificationRepo) CountForProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.q.GetContext(ctx, &n, `SELECT COUNT(*) FROM notifications WHERE product_id = ?`, productID)
	return n, err
}
