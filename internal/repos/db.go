package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"adboard/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
  created_at INTEGER NOT NULL
);

-- Bearer tokens. Values are random uuids; a value is inserted once and never
-- reused, even after the row (or its user) is deleted.
CREATE TABLE IF NOT EXISTS tokens(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  token TEXT NOT NULL UNIQUE,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id);

-- Advertisements
CREATE TABLE IF NOT EXISTS advertisements(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  status_open INTEGER NOT NULL DEFAULT 1,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ads_user    ON advertisements(user_id);
CREATE INDEX IF NOT EXISTS idx_ads_title   ON advertisements(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_ads_created ON advertisements(created_at);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures an 'admin' account exists (idempotent; safe to run every
// start). hash must already be a bcrypt string.
func SeedAdmin(db *sqlx.DB, hash string, now int64) error {
	if hash == "" {
		return nil
	}
	res, err := db.Exec(`
		INSERT INTO users(name, password_hash, role, created_at)
		VALUES('admin', ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, hash, domain.RoleAdmin, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Println("[seed] created admin user")
	}
	return nil
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure from
// the sqlite driver (modernc surfaces these as formatted strings only).
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
