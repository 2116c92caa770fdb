package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"receiptpoints/internal/receipt"
)

// Postgres persists receipts in a receipts table. The pool owned by the
// underlying *sql.DB serializes nothing itself; each insert is a single
// statement, so concurrent submissions cannot interleave partial writes.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres connects via the pgx stdlib driver and verifies the
// connection before returning.
func OpenPostgres(connStr string) (*Postgres, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgres(db), nil
}

func (s *Postgres) Close() error { return s.db.Close() }

// Init creates the receipts table if it does not exist. Safe to run on
// every start.
func (s *Postgres) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS receipts (
			id TEXT PRIMARY KEY,
			retailer TEXT NOT NULL,
			purchase_date TEXT NOT NULL,
			purchase_time TEXT NOT NULL,
			items TEXT NOT NULL,
			total NUMERIC NOT NULL,
			points INTEGER NOT NULL
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating receipts table: %w", err)
	}

	return nil
}

func (s *Postgres) CreateReceipt(ctx context.Context, rec *receipt.StoredReceipt) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO receipts (id, retailer, purchase_date, purchase_time, items, total, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Retailer,
		rec.PurchaseDate,
		rec.PurchaseTime,
		string(items),
		rec.Total,
		rec.Points,
	)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (s *Postgres) GetPoints(ctx context.Context, id string) (int, error) {
	query := `SELECT points FROM receipts WHERE id = $1`

	var points int

	err := s.db.QueryRowContext(ctx, query, id).Scan(&points)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, receipt.ErrNotFound
		}

		return 0, fmt.Errorf("getting points: %w", err)
	}

	return points, nil
}
