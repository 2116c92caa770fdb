package receipt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags a ValidationError with the failure class it represents.
type Kind string

const (
	KindMalformedInput Kind = "malformed_input"
	KindMissingField   Kind = "missing_field"
	KindInvalidType    Kind = "invalid_type"
	KindEmptyField     Kind = "empty_field"
	KindInvalidValue   Kind = "invalid_value"
)

// ValidationError describes a rejected receipt payload. Msg is safe to show
// to the client and names the offending field or condition.
type ValidationError struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(kind Kind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

var requiredFields = []string{"retailer", "purchaseDate", "purchaseTime", "items", "total"}

// Parse turns a raw JSON body into a Receipt, checking each stage in order
// and stopping at the first failure. Amounts are accepted as numeric strings
// (canonical) or bare JSON numbers; both decode exactly through decimal.
// purchaseDate and purchaseTime formats are deliberately not checked here.
func Parse(body []byte) (Receipt, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Receipt{}, invalid(KindMalformedInput, "", "request body must be a JSON object")
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return Receipt{}, invalid(KindMissingField, field, "missing required field %q", field)
		}
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw["items"], &rawItems); err != nil {
		return Receipt{}, invalid(KindInvalidType, "items", "items must be a list")
	}

	retailer, err := parseString(raw["retailer"], "retailer")
	if err != nil {
		return Receipt{}, err
	}

	if strings.TrimSpace(retailer) == "" {
		return Receipt{}, invalid(KindEmptyField, "retailer", "retailer cannot be empty")
	}

	purchaseDate, err := parseString(raw["purchaseDate"], "purchaseDate")
	if err != nil {
		return Receipt{}, err
	}

	purchaseTime, err := parseString(raw["purchaseTime"], "purchaseTime")
	if err != nil {
		return Receipt{}, err
	}

	items := make([]Item, 0, len(rawItems))

	for _, rawItem := range rawItems {
		item, err := parseItem(rawItem)
		if err != nil {
			return Receipt{}, err
		}

		items = append(items, item)
	}

	total, err := parseAmount(raw["total"], "total")
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		Retailer:     retailer,
		PurchaseDate: purchaseDate,
		PurchaseTime: purchaseTime,
		Items:        items,
		Total:        total,
	}, nil
}

func parseItem(raw json.RawMessage) (Item, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Item{}, invalid(KindInvalidType, "items", "each item must be an object")
	}

	for _, field := range []string{"shortDescription", "price"} {
		if _, ok := fields[field]; !ok {
			return Item{}, invalid(KindMissingField, field, "each item must have shortDescription and price")
		}
	}

	desc, err := parseString(fields["shortDescription"], "shortDescription")
	if err != nil {
		return Item{}, err
	}

	price, err := parseAmount(fields["price"], "price")
	if err != nil {
		return Item{}, err
	}

	return Item{ShortDescription: desc, Price: price}, nil
}

func parseString(raw json.RawMessage, field string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalid(KindInvalidType, field, "%s must be a string", field)
	}

	return s, nil
}

func parseAmount(raw json.RawMessage, field string) (decimal.Decimal, error) {
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Decimal{}, invalid(KindInvalidValue, field, "invalid %s %s", field, raw)
	}

	if d.IsNegative() {
		return decimal.Decimal{}, invalid(KindInvalidValue, field, "%s cannot be negative", field)
	}

	return d, nil
}
