package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RateModeNormal  = "normal"
	RateModeSpecial = "special"
)

var ErrInvalidInterval = errors.New("checkout time precedes checkin time")

// Segment is one rate-homogeneous slice of a parked interval.
type Segment struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Hours    float64   `json:"hours"`
	RateMode string    `json:"rateMode"`
	Rate     float64   `json:"rate"`
	Amount   float64   `json:"amount"`
}

// Calendar answers which rate regime applies at an instant and where the
// next possible regime change is. Satisfied by tariff.Snapshot.
type Calendar interface {
	IsSpecial(t time.Time) bool
	NextBoundary(t time.Time) time.Time
}

// ComputeCharge splits [from, to) into maximal segments of constant rate
// mode and prices each one. Hours are fractional. Each segment amount is
// rounded to 2 decimals before summing, so the total always equals the sum
// of the displayed line items.
func ComputeCharge(from, to time.Time, rateNormal, rateSpecial float64, cal Calendar) (float64, []Segment, error) {
	if to.Before(from) {
		return 0, nil, ErrInvalidInterval
	}
	if to.Equal(from) {
		return 0, []Segment{}, nil
	}

	type span struct {
		from, to time.Time
		special  bool
	}

	var spans []span
	cur := from
	for cur.Before(to) {
		special := cal.IsSpecial(cur)
		end := cal.NextBoundary(cur)
		if !end.After(cur) {
			// A calendar must always move forward; bail out rather than spin.
			end = to
		}
		if end.After(to) {
			end = to
		}

		if n := len(spans); n > 0 && spans[n-1].special == special {
			spans[n-1].to = end
		} else {
			spans = append(spans, span{from: cur, to: end, special: special})
		}
		cur = end
	}

	segments := make([]Segment, 0, len(spans))
	total := decimal.Zero
	for _, sp := range spans {
		hours := sp.to.Sub(sp.from).Hours()
		mode := RateModeNormal
		rate := rateNormal
		if sp.special {
			mode = RateModeSpecial
			rate = rateSpecial
		}

		amount := decimal.NewFromFloat(hours).
			Mul(decimal.NewFromFloat(rate)).
			Round(2)
		total = total.Add(amount)

		segments = append(segments, Segment{
			From:     sp.from,
			To:       sp.to,
			Hours:    hours,
			RateMode: mode,
			Rate:     rate,
			Amount:   amount.InexactFloat64(),
		})
	}

	return total.InexactFloat64(), segments, nil
}
