package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Summarize counts loans by lifecycle at instant now.
func (c *Classifier) Summarize(loans []LoanRecord, now time.Time) (Summary, error) {
	s := Summary{Total: len(loans), OutstandingFees: decimal.Zero}
	for _, l := range loans {
		v, err := c.Classify(l, now)
		if err != nil {
			return Summary{}, err
		}
		switch v.Lifecycle {
		case LifecycleReturned:
			s.Returned++
		case LifecycleOverdue:
			s.Overdue++
			s.OutstandingFees = s.OutstandingFees.Add(v.LateFee)
		default:
			s.Current++
		}
	}
	return s, nil
}

// LoanTab selects a slice of the borrowing history.
type LoanTab string

const (
	TabAll      LoanTab = "all"
	TabCurrent  LoanTab = "current"
	TabOverdue  LoanTab = "overdue"
	TabReturned LoanTab = "returned"
)

// ParseLoanTab accepts a tab name case-insensitively; empty means all.
func ParseLoanTab(s string) (LoanTab, error) {
	switch tab := LoanTab(strings.ToLower(strings.TrimSpace(s))); tab {
	case "":
		return TabAll, nil
	case TabAll, TabCurrent, TabOverdue, TabReturned:
		return tab, nil
	default:
		return "", fmt.Errorf("unknown tab %q (want all, current, overdue or returned)", s)
	}
}

func (t LoanTab) includes(l Lifecycle) bool {
	switch t {
	case TabCurrent:
		return l == LifecycleActive || l == LifecycleDueSoon
	case TabOverdue:
		return l == LifecycleOverdue
	case TabReturned:
		return l == LifecycleReturned
	default:
		return true
	}
}

// FilterLoans classifies loans and keeps those on tab, preserving order.
func (c *Classifier) FilterLoans(loans []LoanRecord, now time.Time, tab LoanTab) ([]LoanView, error) {
	views, err := c.ClassifyAll(loans, now)
	if err != nil {
		return nil, err
	}
	out := views[:0]
	for _, v := range views {
		if tab.includes(v.Lifecycle) {
			out = append(out, v)
		}
	}
	return out, nil
}
