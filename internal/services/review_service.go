package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"prodx/internal/domain"
	applog "prodx/internal/log"
	"prodx/internal/mailer"
	"prodx/internal/metrics"
	"prodx/internal/repos"
)

var decisionEmail = template.Must(template.New("decision").Parse(`
<p>Hi <strong>{{.CodeName}}</strong>,</p>
<p>Your product <strong>{{.ProductName}}</strong> has been <strong>{{.Outcome}}</strong>.</p>
<p>Thank you for using Project Hiraya!</p>
`))

// ReviewService applies staff decisions to product submissions and emails
// the submitter. The status write and the outbox row commit together; the
// email goes out after commit and its failure never undoes the decision.
//
// Decisions on the same product are not serialized: the last write wins,
// and an earlier email may describe a status that was since overwritten.
type ReviewService struct {
	DB            *sqlx.DB
	Products      *repos.ProductRepo
	Notifications *repos.NotificationRepo
	Mail          mailer.Sender
	NewID         func() string
}

func NewReviewService(db *sqlx.DB, products *repos.ProductRepo, notes *repos.NotificationRepo, mail mailer.Sender) *ReviewService {
	return &ReviewService{DB: db, Products: products, Notifications: notes, Mail: mail, NewID: uuid.NewString}
}

// Decide sets the product to Confirmed or Rejected and attempts one email.
// It returns ErrProductNotFound without writing anything when productID is
// unknown. A missing submitter yields a skipped notification and no error.
func (s *ReviewService) Decide(ctx context.Context, actor domain.Actor, productID int64, d domain.Decision) (domain.Notification, error) {
	if productID <= 0 {
		return domain.Notification{}, fmt.Errorf("%w: product id %d", ErrInvalidDecision, productID)
	}
	if d != domain.DecisionConfirm && d != domain.DecisionReject {
		return domain.Notification{}, fmt.Errorf("%w: action %q", ErrInvalidDecision, string(d))
	}

	var note domain.Notification
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		products := s.Products.WithTx(tx)
		found, err := products.SetStatus(ctx, productID, d.Status(), actor.AdminID)
		if err != nil {
			return fmt.Errorf("set status: %w", err)
		}
		if !found {
			return ErrProductNotFound
		}

		rc, err := products.Recipient(ctx, productID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lookup recipient: %w", err)
		}
		note, err = s.compose(productID, d, rc)
		if err != nil {
			return err
		}
		return s.Notifications.WithTx(tx).Insert(ctx, note)
	})
	if err != nil {
		metrics.Decisions.WithLabelValues(string(d), resultLabel(err)).Inc()
		return domain.Notification{}, err
	}
	metrics.Decisions.WithLabelValues(string(d), "ok").Inc()

	if note.State == domain.NotificationSkipped {
		applog.Warn(nil, "review.notify.recipient_missing", nil, map[string]any{"product_id": productID, "decision": string(d)})
		metrics.Notifications.WithLabelValues(string(note.State)).Inc()
		return note, nil
	}
	s.dispatch(ctx, &note)
	return note, nil
}

func (s *ReviewService) compose(productID int64, d domain.Decision, rc repos.Recipient) (domain.Notification, error) {
	var body bytes.Buffer
	if err := decisionEmail.Execute(&body, map[string]string{
		"CodeName":    rc.CodeName,
		"ProductName": rc.ProductName,
		"Outcome":     strings.ToLower(d.Outcome()),
	}); err != nil {
		return domain.Notification{}, fmt.Errorf("render notification: %w", err)
	}
	n := domain.Notification{
		ID:          s.NewID(),
		ProductID:   productID,
		Decision:    d,
		ToEmail:     rc.Email,
		ToName:      rc.CodeName,
		ProductName: rc.ProductName,
		Subject:     "Your Product Has Been " + d.Outcome(),
		Body:        strings.TrimSpace(body.String()),
		State:       domain.NotificationPending,
	}
	if rc.Email == "" {
		n.State = domain.NotificationSkipped
		n.LastError = "recipient not found"
	}
	return n, nil
}

// dispatch makes exactly one delivery attempt and records the outcome.
func (s *ReviewService) dispatch(ctx context.Context, n *domain.Notification) {
	err := s.Mail.Send(ctx, mailer.Message{To: n.ToEmail, ToName: n.ToName, Subject: n.Subject, HTMLBody: n.Body})
	fields := map[string]any{"notification_id": n.ID, "product_id": n.ProductID, "to": n.ToEmail}
	if err != nil {
		n.State = domain.NotificationFailed
		n.LastError = err.Error()
		applog.Error(nil, "review.notify.fail", err, fields)
		if merr := s.Notifications.MarkFailed(ctx, n.ID, err.Error()); merr != nil {
			applog.Error(nil, "review.notify.mark.fail", merr, fields)
		}
	} else {
		n.State = domain.NotificationSent
		applog.Info(nil, "review.notify.sent", fields)
		if merr := s.Notifications.MarkSent(ctx, n.ID); merr != nil {
			applog.Error(nil, "review.notify.mark.fail", merr, fields)
		}
	}
	metrics.Notifications.WithLabelValues(string(n.State)).Inc()
}

// Recent lists the latest outbox rows for the staff view.
func (s *ReviewService) Recent(ctx context.Context, limit int) ([]domain.Notification, error) {
	return s.Notifications.ListLatest(ctx, limit)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}
