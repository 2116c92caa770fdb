package receipt

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no receipt exists for a given identifier.
var ErrNotFound = errors.New("receipt not found")

// Item represents one purchased line on a receipt.
type Item struct {
	ShortDescription string          `json:"shortDescription"`
	Price            decimal.Decimal `json:"price"`
}

// Receipt represents one submitted purchase. PurchaseDate and PurchaseTime
// are carried as raw strings; their format is not checked at intake and a
// malformed value only means the related scoring rules do not apply.
type Receipt struct {
	Retailer     string
	PurchaseDate string
	PurchaseTime string
	Items        []Item
	Total        decimal.Decimal
}

// StoredReceipt is the persisted record: immutable once created, never
// updated or deleted, looked up solely by ID.
type StoredReceipt struct {
	ID string
	Receipt
	Points int
}
