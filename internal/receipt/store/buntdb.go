package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tidwall/buntdb"

	"receiptpoints/internal/receipt"
)

// Bunt persists receipts in an embedded buntdb file. Writes are fsynced
// before Set returns, and every operation runs inside a buntdb transaction,
// which serializes concurrent access to the file.
type Bunt struct {
	db *buntdb.DB
}

// OpenBunt opens (or creates) the store file at path. Pass ":memory:" for a
// non-durable in-memory store.
func OpenBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening receipt store: %w", err)
	}

	var cfg buntdb.Config
	if err := db.ReadConfig(&cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading store config: %w", err)
	}

	cfg.SyncPolicy = buntdb.Always

	if err := db.SetConfig(cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring store: %w", err)
	}

	return &Bunt{db: db}, nil
}

func (s *Bunt) Close() error { return s.db.Close() }

// storedRecord is the serialized shape written under "receipt:<id>".
type storedRecord struct {
	ID           string          `json:"id"`
	Retailer     string          `json:"retailer"`
	PurchaseDate string          `json:"purchaseDate"`
	PurchaseTime string          `json:"purchaseTime"`
	Items        []receipt.Item  `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Points       int             `json:"points"`
}

func receiptKey(id string) string { return "receipt:" + id }

func (s *Bunt) CreateReceipt(ctx context.Context, rec *receipt.StoredReceipt) error {
	payload, err := json.Marshal(storedRecord{
		ID:           rec.ID,
		Retailer:     rec.Retailer,
		PurchaseDate: rec.PurchaseDate,
		PurchaseTime: rec.PurchaseTime,
		Items:        rec.Items,
		Total:        rec.Total,
		Points:       rec.Points,
	})
	if err != nil {
		return fmt.Errorf("encoding receipt: %w", err)
	}

	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(receiptKey(rec.ID), string(payload), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}

	return nil
}

func (s *Bunt) GetPoints(ctx context.Context, id string) (int, error) {
	var value string

	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(receiptKey(id))
		if err != nil {
			return err
		}

		value = v

		return nil
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return 0, receipt.ErrNotFound
		}

		return 0, fmt.Errorf("reading receipt: %w", err)
	}

	var rec storedRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return 0, fmt.Errorf("decoding receipt: %w", err)
	}

	return rec.Points, nil
}
