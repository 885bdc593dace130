package receipt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrPointsOverflow is returned when a receipt scores beyond what can be stored
var ErrPointsOverflow = errors.New("points exceed the maximum storable value")

var (
	maxPoints       = decimal.NewFromInt(math.MaxInt64)
	quarter         = decimal.RequireFromString("0.25")
	itemPointsRatio = decimal.RequireFromString("0.2")
)

// Points computes the reward points for a validated receipt.
// An error means r did not come through Validate.
func Points(r Receipt) (int64, error) {
	total, err := decimal.NewFromString(r.Total)
	if err != nil {
		return 0, fmt.Errorf("parsing total %q: %w", r.Total, err)
	}
	date, err := time.Parse(dateLayout, r.PurchaseDate)
	if err != nil {
		return 0, fmt.Errorf("parsing purchase date %q: %w", r.PurchaseDate, err)
	}
	clock, err := time.Parse(timeLayout, r.PurchaseTime)
	if err != nil {
		return 0, fmt.Errorf("parsing purchase time %q: %w", r.PurchaseTime, err)
	}

	points := decimal.NewFromInt(retailerPoints(r.Retailer))

	if strings.HasSuffix(r.Total, ".00") {
		points = points.Add(decimal.NewFromInt(50))
	}
	if total.Mod(quarter).IsZero() {
		points = points.Add(decimal.NewFromInt(25))
	}

	points = points.Add(decimal.NewFromInt(int64(len(r.Items) / 2 * 5)))

	for i, item := range r.Items {
		p, err := itemPoints(item)
		if err != nil {
			return 0, fmt.Errorf("scoring item %d: %w", i, err)
		}
		points = points.Add(p)
	}

	if date.Day()%2 == 1 {
		points = points.Add(decimal.NewFromInt(6))
	}

	// strictly between 14:00 and 16:00
	minutes := clock.Hour()*60 + clock.Minute()
	if minutes > 14*60 && minutes < 16*60 {
		points = points.Add(decimal.NewFromInt(10))
	}

	if points.GreaterThan(maxPoints) {
		return 0, fmt.Errorf("scoring %s points: %w", points, ErrPointsOverflow)
	}
	return points.IntPart(), nil
}

func retailerPoints(retailer string) int64 {
	var n int64
	for _, c := range retailer {
		if unicode.IsLetter(c) || unicode.IsNumber(c) {
			n++
		}
	}
	return n
}

// itemPoints awards ceil(price * 0.2) when the trimmed description length is a multiple of 3.
// An all-whitespace description trims to length 0 and qualifies.
func itemPoints(item Item) (decimal.Decimal, error) {
	if utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))%3 != 0 {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing price %q: %w", item.Price, err)
	}
	return price.Mul(itemPointsRatio).Ceil(), nil
}
