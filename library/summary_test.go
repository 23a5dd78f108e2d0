package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoans() []LoanRecord {
	return []LoanRecord{
		loanAt(1, -14*day, -7*day, LoanActive),    // overdue 7
		loanAt(2, -10*day, day, LoanActive),       // due soon
		loanAt(3, -2*day, 12*day, LoanActive),     // active
		loanAt(4, -40*day, -26*day, LoanReturned), // returned
		loanAt(5, -5*day, -2*day, LoanOverdue),    // overdue 2
	}
}

func TestSummarize(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	s, err := c.Summarize(sampleLoans(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 2, s.Overdue)
	assert.Equal(t, 1, s.Returned)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, "4.5", s.OutstandingFees.String())
	assert.Equal(t, s.Total, s.Current+s.Overdue+s.Returned)
}

func TestSummarizeEmpty(t *testing.T) {
	s, err := NewClassifier(DefaultPolicy()).Summarize(nil, testNow)
	require.NoError(t, err)
	assert.Zero(t, s.Current)
	assert.Zero(t, s.Overdue)
	assert.Zero(t, s.Returned)
	assert.Zero(t, s.Total)
	assert.True(t, s.OutstandingFees.IsZero())
}

func TestSummarizeInvalid(t *testing.T) {
	loans := sampleLoans()
	loans[2].Status = ""
	_, err := NewClassifier(DefaultPolicy()).Summarize(loans, testNow)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestFilterLoansTabs(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	tests := []struct {
		tab  LoanTab
		want []int64
	}{
		{TabAll, []int64{1, 2, 3, 4, 5}},
		{TabCurrent, []int64{2, 3}},
		{TabOverdue, []int64{1, 5}},
		{TabReturned, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			views, err := c.FilterLoans(sampleLoans(), testNow, tt.tab)
			require.NoError(t, err)
			got := make([]int64, len(views))
			for i, v := range views {
				got[i] = v.Loan.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLoanTab(t *testing.T) {
	tab, err := ParseLoanTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, tab)

	tab, err = ParseLoanTab("Overdue")
	require.NoError(t, err)
	assert.Equal(t, TabOverdue, tab)

	_, err = ParseLoanTab("lost")
	assert.Error(t, err)
}
