package repos

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"prodx/internal/validate"
)

// ErrWeakAdminPassword is returned by SeedAdmin for a password the login
// form would never accept.
var ErrWeakAdminPassword = errors.New("ADMIN_PASSWORD must be 8-72 characters with lower, upper, digit and symbol")

// querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps
	// ":memory:" databases and per-connection pragmas consistent.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InTx runs fn in a transaction, committing only when fn returns nil.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Submitters (owned by the storefront; read-only here)
CREATE TABLE IF NOT EXISTS users(
  user_id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  code_name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_name TEXT NOT NULL,
  product_description TEXT NOT NULL DEFAULT '',
  product_pictures TEXT NOT NULL DEFAULT '[]',
  category INTEGER NOT NULL CHECK (category IN (1,2,3)),
  status INTEGER NOT NULL DEFAULT 1 CHECK (status IN (0,1,2,3)),
  user_id INTEGER NOT NULL REFERENCES users(user_id),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  reviewed_at TEXT,
  reviewed_by TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_user       ON products(user_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Partner companies
CREATE TABLE IF NOT EXISTS company(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  address TEXT NOT NULL,
  email_address TEXT NOT NULL,
  contact_number TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_company_name ON company(LOWER(company));

-- Decision email outbox
CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  product_id INTEGER NOT NULL,
  decision TEXT NOT NULL CHECK (decision IN ('confirm','reject')),
  to_email TEXT NOT NULL DEFAULT '',
  to_name TEXT NOT NULL DEFAULT '',
  product_name TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  body TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL CHECK (state IN ('pending','sent','failed','skipped')),
  last_error TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  sent_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_notifications_product ON notifications(product_id);

-- Staff accounts & sessions
CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins(LOWER(email));

CREATE TABLE IF NOT EXISTS admin_sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  admin_id TEXT NULL REFERENCES admins(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_admin ON admin_sessions(admin_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures a staff account exists for email (idempotent).
// Credentials come from configuration, never from source.
func SeedAdmin(db *sqlx.DB, email, name, password string) error {
	if email == "" || password == "" {
		log.Println("[seed] ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}
	if !validate.Password(password) {
		return ErrWeakAdminPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO admins(id,email,name,password_hash)
		VALUES(?,?,?,?)
		ON CONFLICT(email) DO NOTHING
	`, uuid.NewString(), email, name, string(h))
	return err
}

// SeedDemo inserts demo submitters and products when the catalog is empty.
func SeedDemo(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo submitters/products/companies")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(user_id,email,code_name) VALUES
	  (1,'maria@hiraya.test','Maria'),
	  (2,'jose@hiraya.test','Jose'),
	  (3,'ana@hiraya.test','Ana')`)

	tx.MustExec(`INSERT INTO products(product_name,product_description,product_pictures,category,status,user_id,created_at) VALUES
	  ('Rice Hull Briquettes','Biomass fuel from rice hulls','["uploads/briquettes/1.jpg","uploads/briquettes/2.jpg"]',3,2,1,'2023-04-12 09:15:00'),
	  ('Moringa Capsules','Dried moringa leaf supplement','["uploads/moringa/1.jpg"]',2,2,2,'2024-03-01 10:00:00'),
	  ('Coco Coir Mats','Erosion control mats','["uploads/coir/1.jpg"]',1,0,3,'2024-06-20 14:30:00'),
	  ('Solar Fruit Dryer','Low-cost solar dehydrator','["uploads/dryer/1.jpg","uploads/dryer/2.jpg"]',3,1,1,'2025-01-08 08:45:00'),
	  ('Herbal Balm','Lagundi and sambong balm','[]',2,1,2,'2025-02-14 16:05:00')`)

	tx.MustExec(`INSERT INTO company(company,address,email_address,contact_number) VALUES
	  ('Bayanihan Agri Co-op','Los Baños, Laguna','coop@bayanihan.test','+63 49 536 0000'),
	  ('Lakas Renewables','Cebu City, Cebu','hello@lakas.test','+63 32 255 0000')`)

	return tx.Commit()
}
