package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"library-portal/library"
)

func (c *Client) Books(ctx context.Context, s library.Session) ([]library.BookRecord, error) {
	var books []library.BookRecord
	if err := c.do(ctx, s, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// NewBook is the payload for adding a title to the catalog.
type NewBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"categoryId,omitempty"`
}

// CreateBook adds a title to the catalog (admin only).
func (c *Client) CreateBook(ctx context.Context, s library.Session, b NewBook) (library.BookRecord, error) {
	var created library.BookRecord
	if err := c.do(ctx, s, http.MethodPost, "/books", b, &created); err != nil {
		return library.BookRecord{}, err
	}
	return created, nil
}

func (c *Client) Categories(ctx context.Context, s library.Session) ([]library.Category, error) {
	var cats []library.Category
	if err := c.do(ctx, s, http.MethodGet, "/book-categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Borrow checks out one copy of bookID for days.
func (c *Client) Borrow(ctx context.Context, s library.Session, bookID int64, days int) (library.LoanRecord, error) {
	q := url.Values{}
	q.Set("borrowDays", strconv.Itoa(days))
	path := fmt.Sprintf("/borrows/book/%d?%s", bookID, q.Encode())

	var loan library.LoanRecord
	if err := c.do(ctx, s, http.MethodPost, path, nil, &loan); err != nil {
		return library.LoanRecord{}, err
	}
	return loan.In(c.location), nil
}

// MyLoans lists the signed-in user's borrowing history.
func (c *Client) MyLoans(ctx context.Context, s library.Session) ([]library.LoanRecord, error) {
	var loans []library.LoanRecord
	if err := c.do(ctx, s, http.MethodGet, "/borrows/my", nil, &loans); err != nil {
		return nil, err
	}
	for i := range loans {
		loans[i] = loans[i].In(c.location)
	}
	return loans, nil
}

func (c *Client) ReturnLoan(ctx context.Context, s library.Session, loanID int64) (library.LoanRecord, error) {
	var loan library.LoanRecord
	if err := c.do(ctx, s, http.MethodPut, fmt.Sprintf("/borrows/%d/return", loanID), nil, &loan); err != nil {
		return library.LoanRecord{}, err
	}
	return loan.In(c.location), nil
}
