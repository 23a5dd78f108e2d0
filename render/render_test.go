package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"library-portal/library"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func view(lifecycle library.Lifecycle, untilDue, overdue int, fee string) library.LoanView {
	return library.LoanView{
		Loan: library.LoanRecord{
			ID:         9,
			BookID:     42,
			BorrowDate: library.At(now.AddDate(0, 0, -14)),
			DueDate:    library.At(now.AddDate(0, 0, untilDue)),
			Status:     library.LoanActive,
		},
		Lifecycle:    lifecycle,
		DaysUntilDue: untilDue,
		DaysOverdue:  overdue,
		LateFee:      decimal.RequireFromString(fee),
	}
}

func TestDueLineAndLateFee(t *testing.T) {
	tests := []struct {
		name string
		v    library.LoanView
		due  string
		fee  string
	}{
		{"overdue", view(library.LifecycleOverdue, -7, 7, "3.5"), "Overdue by 7 days", "$3.50 (7 days overdue)"},
		{"one day overdue", view(library.LifecycleOverdue, 0, 1, "0.5"), "Overdue by 1 day", "$0.50 (1 day overdue)"},
		{"due today", view(library.LifecycleDueSoon, 0, 0, "0"), "Due today", ""},
		{"due tomorrow", view(library.LifecycleDueSoon, 1, 0, "0"), "Due in 1 day", ""},
		{"active", view(library.LifecycleActive, 10, 0, "0"), "Due in 10 days", ""},
		{"returned without date", view(library.LifecycleReturned, -3, 0, "0"), "Returned", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.due, DueLine(tt.v))
			assert.Equal(t, tt.fee, LateFee(tt.v))
		})
	}
}

func TestLoanCardFallbacks(t *testing.T) {
	var buf bytes.Buffer
	Loan(&buf, view(library.LifecycleOverdue, -7, 7, "3.5"))
	out := buf.String()
	assert.Contains(t, out, "Unknown Book")
	assert.Contains(t, out, "Unknown Author")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "$3.50 (7 days overdue)")
	assert.Contains(t, out, "Loan #9")
}

func TestLoansEmptyStates(t *testing.T) {
	for tab, want := range map[library.LoanTab]string{
		library.TabAll:     "No Borrowing History",
		library.TabCurrent: "No Current Borrowings",
		library.TabOverdue: "No Overdue Books",
	} {
		var buf bytes.Buffer
		Loans(&buf, nil, tab)
		assert.Contains(t, buf.String(), want)
	}
}

func TestBooks(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, nil)
	assert.Contains(t, buf.String(), "No books found")

	buf.Reset()
	Books(&buf, []library.BookRecord{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Fiction", AvailableCopies: 2, TotalCopies: 2},
		{ID: 2, Title: "Orphan", AvailableCopies: 0, TotalCopies: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "2 Available")
	assert.Contains(t, out, "Unavailable")
	assert.Contains(t, out, "Unknown Author")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "2 books")
}

func TestSnapshotAndUnavailable(t *testing.T) {
	var buf bytes.Buffer
	Snapshot(&buf, now.Add(-3*time.Hour), now)
	assert.Contains(t, buf.String(), "3 hours ago")

	buf.Reset()
	Unavailable(&buf, "the catalog", errors.New("connection refused"))
	assert.Contains(t, buf.String(), "Could not load the catalog.")
	assert.Contains(t, buf.String(), "connection refused")
	assert.NotContains(t, buf.String(), "Gatsby")
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	Stats(&buf, library.Summary{Current: 1, Overdue: 1, Returned: 2, Total: 4, OutstandingFees: decimal.RequireFromString("3.5")})
	assert.Contains(t, buf.String(), "Total:    4")
	assert.Contains(t, buf.String(), "$3.50")
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, library.GuestSession())
	assert.Contains(t, buf.String(), "Guest User")

	buf.Reset()
	Header(&buf, library.NewSession("t", "ada@example.com", []string{"admin"}))
	assert.Contains(t, buf.String(), "ada@example.com (ADMIN)")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "A Brief...", truncateString("A Brief History of Time", 10))
	assert.Equal(t, "Für E...", truncateString("Für Elise und mehr", 8))
}
