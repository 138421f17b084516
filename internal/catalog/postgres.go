package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tiendabot/backend/internal/domain"
)

// PostgresSource loads the catalog from a products table. Schema:
//
//	CREATE TABLE products (
//	    id          TEXT PRIMARY KEY,
//	    name        TEXT NOT NULL,
//	    price       NUMERIC(10,2) NOT NULL,
//	    category    TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    stock       INTEGER NOT NULL DEFAULT 0,
//	    position    SERIAL
//	);
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresSource{db: db}, nil
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}

func (s *PostgresSource) Load(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, category, description, stock
		FROM products
		ORDER BY position
	`)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: products table missing", ErrNotFound)
		}
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.Stock); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}

	return products, nil
}

func isUndefinedTable(err error) bool {
	// pgconn surfaces SQLSTATE 42P01 (undefined_table) in the error text; the
	// sql.DB wrapper does not expose the code directly.
	var sqlErr interface{ SQLState() string }
	if errors.As(err, &sqlErr) {
		return sqlErr.SQLState() == "42P01"
	}
	return false
}
