package library

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func loanAt(id int64, borrow, due time.Duration, status LoanStatus) LoanRecord {
	return LoanRecord{
		ID:         id,
		BookID:     id * 10,
		BookTitle:  "Book",
		BorrowDate: At(testNow.Add(borrow)),
		DueDate:    At(testNow.Add(due)),
		Status:     status,
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultPolicy())
	returnedAt := At(testNow.Add(-3 * day))

	tests := []struct {
		name         string
		loan         LoanRecord
		lifecycle    Lifecycle
		daysUntilDue int
		daysOverdue  int
		fee          string
	}{
		{
			name:         "overdue by a week",
			loan:         loanAt(1, -14*day, -7*day, LoanActive),
			lifecycle:    LifecycleOverdue,
			daysUntilDue: -7,
			daysOverdue:  7,
			fee:          "3.5",
		},
		{
			name:         "partial day overdue counts as a day",
			loan:         loanAt(2, -14*day, -time.Hour, LoanActive),
			lifecycle:    LifecycleOverdue,
			daysUntilDue: 0,
			daysOverdue:  1,
			fee:          "0.5",
		},
		{
			name:         "due tomorrow",
			loan:         loanAt(3, -13*day, day, LoanActive),
			lifecycle:    LifecycleDueSoon,
			daysUntilDue: 1,
			fee:          "0",
		},
		{
			name:         "due exactly now",
			loan:         loanAt(4, -14*day, 0, LoanActive),
			lifecycle:    LifecycleDueSoon,
			daysUntilDue: 0,
			fee:          "0",
		},
		{
			name:         "due in two and a half days",
			loan:         loanAt(5, -10*day, 2*day+12*time.Hour, LoanActive),
			lifecycle:    LifecycleActive,
			daysUntilDue: 3,
			fee:          "0",
		},
		{
			name:         "due in ten days",
			loan:         loanAt(6, -4*day, 10*day, LoanActive),
			lifecycle:    LifecycleActive,
			daysUntilDue: 10,
			fee:          "0",
		},
		{
			name:         "returned late owes nothing",
			loan:         loanAt(7, -30*day, -16*day, LoanReturned),
			lifecycle:    LifecycleReturned,
			daysUntilDue: -16,
			fee:          "0",
		},
		{
			name: "return date wins over stale status",
			loan: func() LoanRecord {
				l := loanAt(8, -20*day, -6*day, LoanActive)
				l.ReturnDate = &returnedAt
				return l
			}(),
			lifecycle:    LifecycleReturned,
			daysUntilDue: -6,
			fee:          "0",
		},
		{
			name:         "backend overdue status is still derived locally",
			loan:         loanAt(9, -2*day, 5*day, LoanOverdue),
			lifecycle:    LifecycleActive,
			daysUntilDue: 5,
			fee:          "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.Classify(tt.loan, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.lifecycle, v.Lifecycle)
			assert.Equal(t, tt.daysUntilDue, v.DaysUntilDue)
			assert.Equal(t, tt.daysOverdue, v.DaysOverdue)
			assert.True(t, decimal.RequireFromString(tt.fee).Equal(v.LateFee), "fee %s", v.LateFee)
			assert.Equal(t, tt.loan, v.Loan)
		})
	}
}

func TestClassifyReturnedNeverOwes(t *testing.T) {
	c := NewClassifier(DefaultPolicy())
	loan := loanAt(1, -60*day, -45*day, LoanReturned)

	for _, offset := range []time.Duration{-90 * day, 0, 45 * day, 400 * day} {
		v, err := c.Classify(loan, testNow.Add(offset))
		require.NoError(t, err)
		assert.Equal(t, LifecycleReturned, v.Lifecycle)
		assert.True(t, v.LateFee.IsZero())
	}
}

func TestClassifyFeeFollowsPolicy(t *testing.T) {
	c := NewClassifier(Policy{DailyLateFee: decimal.RequireFromString("1.25"), DueSoonDays: 3})

	v, err := c.Classify(loanAt(1, -10*day, -4*day, LoanActive), testNow)
	require.NoError(t, err)
	assert.Equal(t, "5", v.LateFee.String())

	v, err = c.Classify(loanAt(2, -10*day, 3*day, LoanActive), testNow)
	require.NoError(t, err)
	assert.Equal(t, LifecycleDueSoon, v.Lifecycle)
}

func TestClassifyRejectsInvalidLoans(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	missingDue := loanAt(1, -1*day, 0, LoanActive)
	missingDue.DueDate = Timestamp{}

	backwards := loanAt(2, 0, -day, LoanActive)

	badStatus := loanAt(3, -day, day, LoanStatus("LOST"))

	tests := []struct {
		name  string
		loan  LoanRecord
		field string
	}{
		{"missing due date", missingDue, "dueDate"},
		{"due before borrow", backwards, "dueDate"},
		{"unknown status", badStatus, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Classify(tt.loan, testNow)
			require.ErrorIs(t, err, ErrInvalidRecord)
			var rerr *RecordError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "loan", rerr.Kind)
			assert.Equal(t, tt.field, rerr.Field)
		})
	}
}

func TestClassifyAllStopsAtFirstInvalid(t *testing.T) {
	c := NewClassifier(DefaultPolicy())
	bad := loanAt(2, -day, day, LoanActive)
	bad.BorrowDate = Timestamp{}

	_, err := c.ClassifyAll([]LoanRecord{loanAt(1, -day, day, LoanActive), bad}, testNow)
	var rerr *RecordError
	require.ErrorAs(t, err, &rerr)
	assert.EqualValues(t, 2, rerr.ID)
}

func TestCeilDays(t *testing.T) {
	assert.Equal(t, 0, ceilDays(0))
	assert.Equal(t, 1, ceilDays(time.Nanosecond))
	assert.Equal(t, 1, ceilDays(day))
	assert.Equal(t, 2, ceilDays(day+time.Minute))
	assert.Equal(t, 0, ceilDays(-time.Hour))
	assert.Equal(t, -1, ceilDays(-day-time.Hour))
}
