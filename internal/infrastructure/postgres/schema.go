package postgres

import (
	"context"
	"fmt"
)

// schema DDL en orden de dependencia. Idempotente (IF NOT EXISTS).
// Montos y cantidades en NUMERIC sin escala: quantity × unit_price se guarda sin redondeo.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      VARCHAR(80) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          VARCHAR(20) NOT NULL DEFAULT 'seller' CHECK (role IN ('admin', 'seller')),
		is_system     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                  UUID PRIMARY KEY,
		category_id         UUID REFERENCES categories(id),
		name                VARCHAR(200) NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		wholesale_price     NUMERIC NOT NULL DEFAULT 0 CHECK (wholesale_price >= 0),
		retail_price        NUMERIC NOT NULL DEFAULT 0 CHECK (retail_price >= 0),
		stock_quantity      NUMERIC NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		min_stock_threshold NUMERIC NOT NULL DEFAULT 0,
		unit_type           VARCHAR(20) NOT NULL DEFAULT 'whole' CHECK (unit_type IN ('whole', 'partial')),
		unit_description    VARCHAR(50) NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         UUID PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		phone      VARCHAR(20) NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             UUID PRIMARY KEY,
		total_amount   NUMERIC NOT NULL CHECK (total_amount >= 0),
		sale_date      TIMESTAMPTZ NOT NULL DEFAULT now(),
		user_id        UUID NOT NULL REFERENCES users(id),
		customer_id    UUID REFERENCES customers(id),
		payment_type   VARCHAR(20) NOT NULL CHECK (payment_type IN ('cash', 'credit')),
		payment_status VARCHAR(20) NOT NULL CHECK (payment_status IN ('paid', 'partial', 'unpaid')),
		notes          TEXT NOT NULL DEFAULT '',
		CHECK (payment_type = 'cash' OR customer_id IS NOT NULL)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_customer_open ON sales(customer_id, sale_date) WHERE payment_status IN ('unpaid', 'partial')`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id          UUID PRIMARY KEY,
		sale_id     UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id  UUID NOT NULL REFERENCES products(id),
		quantity    NUMERIC NOT NULL CHECK (quantity > 0),
		unit_price  NUMERIC NOT NULL CHECK (unit_price >= 0),
		total_price NUMERIC NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items(product_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id           UUID PRIMARY KEY,
		sale_id      UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		amount       NUMERIC NOT NULL CHECK (amount > 0),
		payment_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		method       VARCHAR(50) NOT NULL DEFAULT 'cash',
		notes        TEXT NOT NULL DEFAULT '',
		user_id      UUID NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_sale ON payments(sale_id)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id           UUID PRIMARY KEY,
		description  VARCHAR(200) NOT NULL,
		amount       NUMERIC NOT NULL CHECK (amount > 0),
		expense_type VARCHAR(50) NOT NULL,
		expense_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		category     VARCHAR(50) NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		user_id      UUID NOT NULL REFERENCES users(id),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(expense_date)`,
}

// Migrate aplica el esquema en orden.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i+1, err)
		}
	}
	return nil
}

// Schema devuelve las sentencias del esquema (para cmd/migrate -print).
func Schema() []string {
	out := make([]string, len(schema))
	copy(out, schema)
	return out
}
