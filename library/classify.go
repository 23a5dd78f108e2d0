package library

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Policy holds the tunables of loan classification.
type Policy struct {
	// DailyLateFee is charged for every started day past the due date.
	DailyLateFee decimal.Decimal
	// DueSoonDays is the largest days-until-due still shown as "due soon".
	DueSoonDays int
}

// DefaultPolicy charges 0.50 per day and flags loans due within two days.
func DefaultPolicy() Policy {
	return Policy{
		DailyLateFee: decimal.RequireFromString("0.50"),
		DueSoonDays:  2,
	}
}

// Classifier derives loan views under a fixed Policy. The zero value is not
// useful; build one with NewClassifier.
type Classifier struct {
	policy Policy
}

func NewClassifier(p Policy) *Classifier {
	return &Classifier{policy: p}
}

// Policy returns the classifier's policy.
func (c *Classifier) Policy() Policy { return c.policy }

// Classify derives the lifecycle of loan at instant now.
func (c *Classifier) Classify(loan LoanRecord, now time.Time) (LoanView, error) {
	if err := ValidateLoan(loan); err != nil {
		return LoanView{}, err
	}

	view := LoanView{
		Loan:         loan,
		DaysUntilDue: ceilDays(loan.DueDate.Sub(now)),
		LateFee:      decimal.Zero,
	}

	switch {
	case loan.Returned():
		view.Lifecycle = LifecycleReturned
	case loan.DueDate.Before(now):
		view.Lifecycle = LifecycleOverdue
		view.DaysOverdue = ceilDays(now.Sub(loan.DueDate.Time))
		view.LateFee = c.policy.DailyLateFee.Mul(decimal.NewFromInt(int64(view.DaysOverdue)))
	case view.DaysUntilDue >= 0 && view.DaysUntilDue <= c.policy.DueSoonDays:
		view.Lifecycle = LifecycleDueSoon
	default:
		view.Lifecycle = LifecycleActive
	}
	return view, nil
}

// ClassifyAll classifies loans in order. The first invalid loan aborts.
func (c *Classifier) ClassifyAll(loans []LoanRecord, now time.Time) ([]LoanView, error) {
	views := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		v, err := c.Classify(l, now)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ceilDays rounds d up to whole days. Integer division truncates toward zero,
// which is already the ceiling for negative durations.
func ceilDays(d time.Duration) int {
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}
