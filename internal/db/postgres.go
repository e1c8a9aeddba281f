package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the storefront schema.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// SETTINGS (key/value, restaurant_info JSON lives here)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(100) PRIMARY KEY,
			value JSONB NOT NULL
		)`,

		// -------------------------------
		// CATEGORIES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			sort_order INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// PRODUCTS & VARIANTS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS variants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			size VARCHAR(100) NOT NULL,
			crust VARCHAR(100) NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price >= 0),
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,

		// -------------------------------
		// ADDON GROUPS & ADDONS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS addon_groups (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL CHECK (type IN ('topping', 'side', 'drink')),
			min_select INT NOT NULL DEFAULT 0 CHECK (min_select >= 0),
			max_select INT NOT NULL DEFAULT 1 CHECK (max_select >= min_select),
			is_required BOOLEAN NOT NULL DEFAULT false
		)`,

		`CREATE TABLE IF NOT EXISTS addons (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			group_id UUID NOT NULL REFERENCES addon_groups(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			price BIGINT NOT NULL DEFAULT 0 CHECK (price >= 0),
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,

		// -------------------------------
		// PRODUCT <-> GROUP LINKS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS product_addon_groups (
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			group_id UUID NOT NULL REFERENCES addon_groups(id) ON DELETE CASCADE,
			PRIMARY KEY (product_id, group_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
