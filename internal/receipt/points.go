package receipt

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	quarter = decimal.New(25, -2) // 0.25
	fifth   = decimal.New(2, -1)  // 0.2
	ten     = decimal.NewFromInt(10)
)

// CalculatePoints computes the loyalty score for a receipt. Pure and
// deterministic: every rule is evaluated and its contribution added, so the
// result is never negative. A purchase date or time that does not parse
// simply makes rules 7 and 8 inapplicable.
func CalculatePoints(r Receipt) int {
	points := 0

	// Rule 1: one point per alphanumeric character in the retailer name.
	for _, c := range r.Retailer {
		if isAlphanumeric(c) {
			points++
		}
	}

	// Rule 2: 50 points if the total is a round dollar amount.
	if r.Total.IsInteger() {
		points += 50
	}

	// Rule 3: 25 points if the total is a multiple of 0.25.
	if r.Total.Mod(quarter).IsZero() {
		points += 25
	}

	// Rule 4: 5 points for every two items.
	points += len(r.Items) / 2 * 5

	// Rule 5: items whose trimmed description length is a non-zero multiple
	// of 3 score ceil(price * 0.2). Length is counted in characters, not
	// bytes.
	for _, item := range r.Items {
		desc := strings.TrimSpace(item.ShortDescription)
		if n := utf8.RuneCountInString(desc); n > 0 && n%3 == 0 {
			points += int(item.Price.Mul(fifth).Ceil().IntPart())
		}
	}

	// Rule 6: 5 points if the total is strictly greater than 10.00.
	if r.Total.GreaterThan(ten) {
		points += 5
	}

	// Rule 7: 6 points if the day of the purchase date is odd.
	if day, ok := purchaseDay(r.PurchaseDate); ok && day%2 != 0 {
		points += 6
	}

	// Rule 8: 10 points if the purchase time is strictly between 14:00
	// and 16:00.
	if minute, ok := purchaseMinute(r.PurchaseTime); ok && minute > 14*60 && minute < 16*60 {
		points += 10
	}

	return points
}

func isAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func purchaseDay(date string) (int, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false
	}

	return t.Day(), true
}

// purchaseMinute returns the time of day as minutes since midnight.
func purchaseMinute(clock string) (int, bool) {
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return 0, false
	}

	return t.Hour()*60 + t.Minute(), true
}
