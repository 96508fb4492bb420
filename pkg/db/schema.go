package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. Every statement is idempotent, so repeated
// starts against the same database are safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	phone         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS menu_items (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
	category    TEXT NOT NULL DEFAULT '',
	available   BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS orders (
	id            TEXT PRIMARY KEY,
	user_id       BIGINT NOT NULL REFERENCES users (id),
	total_amount  NUMERIC(10, 2) NOT NULL CHECK (total_amount >= 0),
	phone         TEXT NOT NULL,
	delivery_type TEXT NOT NULL,
	hostel_name   TEXT,
	pickup_time   TEXT,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_user_created
	ON orders (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
	order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	position INT NOT NULL,
	item_id  TEXT NOT NULL,
	name     TEXT NOT NULL,
	quantity INT NOT NULL CHECK (quantity > 0),
	price    NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
	PRIMARY KEY (order_id, position)
);
`

// ApplySchema creates the tables the service needs if they do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply database schema: %w", err)
	}
	return nil
}
