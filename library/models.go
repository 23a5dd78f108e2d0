package library

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookRecord is a catalog entry as the backend reports it. The engine never
// mutates one.
type BookRecord struct {
	ID              int64   `json:"id" validate:"gt=0"`
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author"`
	ISBN            *string `json:"isbn"`
	Category        string  `json:"category"`
	AvailableCopies int     `json:"availableCopies" validate:"gte=0"`
	TotalCopies     int     `json:"totalCopies" validate:"gtefield=AvailableCopies"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
}

// Available reports whether at least one copy can be borrowed.
func (b BookRecord) Available() bool { return b.AvailableCopies > 0 }

// LoanStatus is the backend's raw status field.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	// LoanOverdue is sent by backends that run their own overdue job. It is
	// treated like ACTIVE; the lifecycle is always derived locally.
	LoanOverdue LoanStatus = "OVERDUE"
)

// LoanRecord is one borrowing transaction.
type LoanRecord struct {
	ID           int64      `json:"id"`
	BookID       int64      `json:"bookId"`
	BookTitle    string     `json:"bookTitle"`
	BookAuthor   string     `json:"bookAuthor"`
	BookImageURL *string    `json:"bookImageUrl"`
	BorrowDate   Timestamp  `json:"borrowDate" validate:"required"`
	DueDate      Timestamp  `json:"dueDate" validate:"required"`
	ReturnDate   *Timestamp `json:"returnDate"`
	Status       LoanStatus `json:"status" validate:"required,oneof=ACTIVE RETURNED OVERDUE"`
}

// Returned reports whether the loan is closed, by status or by a return date.
func (l LoanRecord) Returned() bool {
	return l.Status == LoanReturned || (l.ReturnDate != nil && !l.ReturnDate.IsZero())
}

// In anchors the loan's zone-less dates in loc.
func (l LoanRecord) In(loc *time.Location) LoanRecord {
	l.BorrowDate = l.BorrowDate.In(loc)
	l.DueDate = l.DueDate.In(loc)
	if l.ReturnDate != nil {
		r := l.ReturnDate.In(loc)
		l.ReturnDate = &r
	}
	return l
}

// Lifecycle is the derived state of a loan at a given instant.
type Lifecycle string

const (
	LifecycleReturned Lifecycle = "RETURNED"
	LifecycleOverdue  Lifecycle = "OVERDUE"
	LifecycleDueSoon  Lifecycle = "DUE_SOON"
	LifecycleActive   Lifecycle = "ACTIVE"
)

// LoanView is a loan plus everything derived from it. It is recomputed on
// every query and never stored.
type LoanView struct {
	Loan         LoanRecord
	Lifecycle    Lifecycle
	DaysUntilDue int
	DaysOverdue  int
	LateFee      decimal.Decimal
}

// Summary counts loans by lifecycle.
type Summary struct {
	Current  int `json:"current"`
	Overdue  int `json:"overdue"`
	Returned int `json:"returned"`
	Total    int `json:"total"`
	// OutstandingFees is the sum of late fees over overdue loans.
	OutstandingFees decimal.Decimal `json:"outstandingFees"`
}

// Category is a catalog category as listed by the backend.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Profile is the signed-in user's account details.
type Profile struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	Active    bool      `json:"active"`
}

// In anchors a zone-less CreatedAt in loc.
func (p Profile) In(loc *time.Location) Profile {
	p.CreatedAt = p.CreatedAt.In(loc)
	return p
}

// User is an account as listed by the admin endpoints.
type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}
