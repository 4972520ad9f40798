package domain

type NotificationState string

const (
	NotificationPending NotificationState = "pending"
	NotificationSent    NotificationState = "sent"
	NotificationFailed  NotificationState = "failed"
	NotificationSkipped NotificationState = "skipped"
)

// Notification is an outbox row describing one decision email.
type Notification struct {
	ID          string            `db:"id"`
	ProductID   int64             `db:"product_id"`
	Decision    Decision          `db:"decision"`
	ToEmail     string            `db:"to_email"`
	ToName      string            `db:"to_name"`
	ProductName string            `db:"product_name"`
	Subject     string            `db:"subject"`
	State       NotificationState `db:"state"`
	LastError   string            `db:"last_error"`
	CreatedAt   string            `db:"created_at"`
	SentAt      string            `db:"sent_at"`
	Body        string            `db:"body"`
}

func (n Notification) Delivered() bool { return n.State == NotificationSent }
