package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing. Amounts are BIGINT
// columns in the smallest currency unit.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price BIGINT NOT NULL CHECK (price >= 0),
			discount_percent INTEGER NOT NULL DEFAULT 0 CHECK (discount_percent BETWEEN 0 AND 100),
			category_id UUID REFERENCES categories(id),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			reward_points BIGINT NOT NULL DEFAULT 0 CHECK (reward_points >= 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS addresses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			line VARCHAR(255) NOT NULL,
			ward VARCHAR(100) NOT NULL,
			district VARCHAR(100) NOT NULL,
			province VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS vouchers (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			kind VARCHAR(20) NOT NULL,
			discount_value BIGINT NOT NULL DEFAULT 0,
			max_discount BIGINT,
			min_order_value BIGINT NOT NULL DEFAULT 0,
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			usage_limit INTEGER,
			used_count INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			address_id UUID NOT NULL REFERENCES addresses(id),
			status VARCHAR(20) NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			payment_session_id VARCHAR(100),
			voucher_code VARCHAR(50),
			free_shipping_voucher_code VARCHAR(50),
			subtotal BIGINT NOT NULL,
			shipping_cost BIGINT NOT NULL,
			voucher_discount BIGINT NOT NULL,
			points_discount BIGINT NOT NULL,
			points_used BIGINT NOT NULL,
			final_total BIGINT NOT NULL CHECK (final_total >= 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price BIGINT NOT NULL,
			discount_percent INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses(user_id);
		CREATE INDEX IF NOT EXISTS idx_vouchers_code ON vouchers(code);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB truncates every table between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE order_items, orders, vouchers, addresses, users, products, categories CASCADE`)
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

// SeedCatalogue inserts test categories and products and returns the
// category id used by the products.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	categoryID := uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		categoryID, "Electronics",
	)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	products := []struct {
		id              string
		name            string
		price           int64
		discountPercent int
	}{
		{"P001", "Wireless Earbuds", 200000, 0},
		{"P002", "Phone Case", 100000, 10},
		{"P003", "USB-C Cable", 50000, 0},
		{"P004", "Power Bank", 400000, 20},
		{"P005", "Screen Protector", 30000, 0},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, price, discount_percent, category_id) VALUES ($1, $2, $3, $4, $5)`,
			p.id, p.name, p.price, p.discountPercent, categoryID,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}

	return categoryID
}

// SeedUser inserts a test user with the given reward-point balance and a
// default address, returning both ids.
func SeedUser(t *testing.T, pool *pgxpool.Pool, points int64) (userID, addressID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	userID = uuid.New()
	addressID = uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, reward_points) VALUES ($1, $2, $3, $4)`,
		userID, "Test User", userID.String()+"@example.com", points,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO addresses (id, user_id, line, ward, district, province, phone, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
		addressID, userID, "12 Thanh Nien", "Phuc Xa", "Ba Dinh", "Ha Noi", "0900000000",
	)
	if err != nil {
		t.Fatalf("failed to seed address: %v", err)
	}

	return userID, addressID
}

// SeedVoucher inserts a voucher row.
func SeedVoucher(t *testing.T, pool *pgxpool.Pool, code, kind string, discountValue, minOrderValue int64, maxDiscount *int64, usageLimit *int) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	_, err := pool.Exec(ctx,
		`INSERT INTO vouchers (id, code, kind, discount_value, max_discount, min_order_value,
			start_date, end_date, usage_limit, used_count, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, TRUE)`,
		id, code, kind, discountValue, maxDiscount, minOrderValue,
		now.Add(-time.Hour), now.Add(24*time.Hour), usageLimit,
	)
	if err != nil {
		t.Fatalf("failed to seed voucher %s: %v", code, err)
	}

	return id
}
