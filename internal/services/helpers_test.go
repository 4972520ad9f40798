package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"prodx/internal/domain"
	"prodx/internal/mailer"
	"prodx/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeMailer records every attempt and optionally fails them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *fakeMailer) attempts() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

var errSMTPDown = errors.New("dial tcp 127.0.0.1:587: connect: connection refused")

func addSeller(t *testing.T, db *sqlx.DB, email, codeName string) int64 {
	t.Helper()
	id, err := repos.NewUserRepo(db).Create(context.Background(), email, codeName)
	require.NoError(t, err)
	return id
}

func addProduct(t *testing.T, db *sqlx.DB, owner int64, name string, status domain.Status, createdAt string) int64 {
	t.Helper()
	id, err := repos.NewProductRepo(db).Create(context.Background(), domain.Product{
		Name:         name,
		Description:  name + " description",
		PicturesJSON: `["uploads/a.jpg"]`,
		Category:     domain.CategoryAgriculture,
		Status:       status,
		OwnerID:      owner,
		CreatedAt:    createdAt,
	})
	require.NoError(t, err)
	return id
}

func statusOf(t *testing.T, db *sqlx.DB, id int64) domain.Status {
	t.Helper()
	p, err := repos.NewProductRepo(db).Get(context.Background(), id)
	require.NoError(t, err)
	return p.Status
}
