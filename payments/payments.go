// Package payments holds the ledger arithmetic shared by booking and
// package payments: applying an increment to a record's paid amount and
// deriving the due balance and payment status from the result.
package payments

import "errors"

// Payment statuses derived from the ledger.
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
)

var (
	// ErrNegativeAmount rejects negative increments outright.
	ErrNegativeAmount = errors.New("payment amount must not be negative")
	// ErrExceedsDue rejects a payment larger than the remaining balance.
	// Overpayment is not recorded as credit anywhere, so it is refused.
	ErrExceedsDue = errors.New("payment amount exceeds due balance")
)

// Ledger is the derived payment state of a booking or booked package.
type Ledger struct {
	Total  float64
	Paid   float64
	Due    float64
	Status string
}

// Apply adds increment to the running paid amount and recomputes the
// due balance and status:
//
//	paid   = prior + increment
//	due    = max(total - paid, 0)
//	status = "paid" when due is 0, "partial" when 0 < paid < total,
//	         otherwise the current status is kept.
//
// A zero increment is a no-op on every field. Increments that are
// negative or overshoot the due balance return an error and the ledger
// as it stood.
func Apply(total, prior float64, increment float64, currentStatus string) (Ledger, error) {
	before := compute(total, prior, currentStatus)
	if increment < 0 {
		return before, ErrNegativeAmount
	}
	if increment > before.Due {
		return before, ErrExceedsDue
	}
	return compute(total, prior+increment, currentStatus), nil
}

func compute(total, paid float64, currentStatus string) Ledger {
	due := total - paid
	if due < 0 {
		due = 0
	}
	l := Ledger{Total: total, Paid: paid, Due: due, Status: currentStatus}
	switch {
	case due == 0:
		l.Status = StatusPaid
	case paid > 0:
		l.Status = StatusPartial
	}
	return l
}
