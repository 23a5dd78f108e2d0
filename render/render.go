// Package render prints library data for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"library-portal/library"
)

const dateLayout = "Jan 2, 2006"

const (
	unknownBook     = "Unknown Book"
	unknownAuthor   = "Unknown Author"
	defaultCategory = "General"
)

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Header is the one-line identity banner.
func Header(w io.Writer, s library.Session) {
	if s.IsGuest() {
		fmt.Fprintln(w, Default.Dim.Render(s.DisplayName()))
		return
	}
	fmt.Fprintf(w, "Signed in as %s", Default.Title.Render(s.DisplayName()))
	if roles := s.Roles(); len(roles) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(roles, ", "))
	}
	fmt.Fprintln(w)
}

// Snapshot notes that what follows came from the local store, not the
// backend.
func Snapshot(w io.Writer, fetchedAt, now time.Time) {
	fmt.Fprintln(w, Default.Warning.Render(fmt.Sprintf("Offline: showing data fetched %s (%s)",
		humanize.RelTime(fetchedAt, now, "ago", "from now"),
		fetchedAt.Format("Jan 2, 2006 15:04"))))
}

// Unavailable reports a failed fetch. Nothing else is shown in its place.
func Unavailable(w io.Writer, what string, err error) {
	fmt.Fprintln(w, Default.Error.Render(fmt.Sprintf("Could not load %s.", what)))
	fmt.Fprintln(w, err)
	fmt.Fprintln(w, Default.Dim.Render("Try again later, or pass --offline to show the last fetched copy."))
}

// ------------------ Books ------------------

// Availability is "N Available" or "Unavailable".
func Availability(b library.BookRecord) string {
	if b.Available() {
		return fmt.Sprintf("%d Available", b.AvailableCopies)
	}
	return "Unavailable"
}

func availabilityStyled(b library.BookRecord) string {
	if b.Available() {
		return Default.Available.Render(Availability(b))
	}
	return Default.Unavailable.Render(Availability(b))
}

// BookRow is one table line without styling, shared with the browser.
func BookRow(b library.BookRecord) string {
	return fmt.Sprintf("%-5d %-30s %-25s %-15s",
		b.ID,
		truncateString(orDefault(b.Title, unknownBook), 30),
		truncateString(orDefault(b.Author, unknownAuthor), 25),
		truncateString(orDefault(b.Category, defaultCategory), 15),
	)
}

// BookHeader matches BookRow's columns.
func BookHeader() string {
	return fmt.Sprintf("%-5s %-30s %-25s %-15s %s", "ID", "Title", "Author", "Category", "Availability")
}

func Books(w io.Writer, books []library.BookRecord) {
	if len(books) == 0 {
		fmt.Fprintln(w, Default.Dim.Render("No books found"))
		return
	}
	fmt.Fprintln(w, Default.Header.Render(BookHeader()))
	for _, b := range books {
		fmt.Fprintf(w, "%s %s\n", BookRow(b), availabilityStyled(b))
	}
	fmt.Fprintf(w, "\n%s\n", plural(len(books), "book"))
}

// Book prints the detail view of one title.
func Book(w io.Writer, b library.BookRecord) {
	fmt.Fprintln(w, Default.Title.Render(orDefault(b.Title, unknownBook)))
	fmt.Fprintf(w, "by %s\n", orDefault(b.Author, unknownAuthor))
	fmt.Fprintf(w, "Category: %s\n", orDefault(b.Category, defaultCategory))
	if b.ISBN != nil && *b.ISBN != "" {
		fmt.Fprintf(w, "ISBN:     %s\n", *b.ISBN)
	}
	fmt.Fprintf(w, "Copies:   %s of %d\n", availabilityStyled(b), b.TotalCopies)
	if b.Description != nil && *b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", *b.Description)
	}
}

func Categories(w io.Writer, cats []library.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, Default.Dim.Render("No categories"))
		return
	}
	fmt.Fprintln(w, Default.Header.Render(fmt.Sprintf("%-5s %-20s %s", "ID", "Name", "Description")))
	for _, c := range cats {
		fmt.Fprintf(w, "%-5d %-20s %s\n", c.ID, truncateString(c.Name, 20), c.Description)
	}
}

// ------------------ Loans ------------------

// Badge is the status label of a loan card.
func Badge(v library.LoanView) string {
	switch v.Lifecycle {
	case library.LifecycleReturned:
		return Default.BadgeReturned.Render("Returned")
	case library.LifecycleOverdue:
		return Default.BadgeOverdue.Render("Overdue")
	case library.LifecycleDueSoon:
		return Default.BadgeDueSoon.Render("Due Soon")
	default:
		return Default.BadgeActive.Render("Not Returned")
	}
}

// DueLine summarises where a loan stands against its due date.
func DueLine(v library.LoanView) string {
	switch v.Lifecycle {
	case library.LifecycleReturned:
		if r := v.Loan.ReturnDate; r != nil && !r.IsZero() {
			return "Returned " + r.Format(dateLayout)
		}
		return "Returned"
	case library.LifecycleOverdue:
		return "Overdue by " + plural(v.DaysOverdue, "day")
	}
	if v.DaysUntilDue == 0 {
		return "Due today"
	}
	return "Due in " + plural(v.DaysUntilDue, "day")
}

// LateFee is "$X.XX (N days overdue)", or "" when nothing is owed.
func LateFee(v library.LoanView) string {
	if v.Lifecycle != library.LifecycleOverdue {
		return ""
	}
	return fmt.Sprintf("%s (%s overdue)", money(v.LateFee), plural(v.DaysOverdue, "day"))
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// Loan renders one loan card.
func Loan(w io.Writer, v library.LoanView) {
	l := v.Loan
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]\n", Default.Title.Render(orDefault(l.BookTitle, unknownBook)), Badge(v))
	fmt.Fprintf(&b, "by %s\n", orDefault(l.BookAuthor, unknownAuthor))
	fmt.Fprintf(&b, "Borrowed: %s   Due: %s", l.BorrowDate.Format(dateLayout), l.DueDate.Format(dateLayout))
	if l.ReturnDate != nil && !l.ReturnDate.IsZero() {
		fmt.Fprintf(&b, "   Returned: %s", l.ReturnDate.Format(dateLayout))
	}
	fmt.Fprintf(&b, "\n%s", DueLine(v))
	if fee := LateFee(v); fee != "" {
		fmt.Fprintf(&b, "\nLate fee: %s", Default.BadgeOverdue.Render(fee))
	}
	fmt.Fprintf(&b, "\n%s", Default.Dim.Render(fmt.Sprintf("Loan #%d · Book #%d", l.ID, l.BookID)))
	fmt.Fprintln(w, Default.Card.Render(b.String()))
}

var emptyTab = map[library.LoanTab]string{
	library.TabAll:      "No Borrowing History",
	library.TabCurrent:  "No Current Borrowings",
	library.TabOverdue:  "No Overdue Books",
	library.TabReturned: "No Returned Books",
}

// Loans renders the cards of one borrowings tab.
func Loans(w io.Writer, views []library.LoanView, tab library.LoanTab) {
	if len(views) == 0 {
		msg, ok := emptyTab[tab]
		if !ok {
			msg = emptyTab[library.TabAll]
		}
		fmt.Fprintln(w, Default.Dim.Render(msg))
		return
	}
	for _, v := range views {
		Loan(w, v)
	}
}

func Stats(w io.Writer, s library.Summary) {
	fmt.Fprintln(w, Default.Header.Render("Borrowing statistics"))
	fmt.Fprintf(w, "Current:  %d\n", s.Current)
	fmt.Fprintf(w, "Overdue:  %s\n", overdueCount(s.Overdue))
	fmt.Fprintf(w, "Returned: %d\n", s.Returned)
	fmt.Fprintf(w, "Total:    %d\n", s.Total)
	if s.OutstandingFees.IsPositive() {
		fmt.Fprintf(w, "Outstanding late fees: %s\n", Default.BadgeOverdue.Render(money(s.OutstandingFees)))
	}
}

func overdueCount(n int) string {
	if n == 0 {
		return "0"
	}
	return Default.BadgeOverdue.Render(fmt.Sprint(n))
}

// ------------------ Accounts ------------------

func Profile(w io.Writer, p library.Profile, now time.Time) {
	fmt.Fprintln(w, Default.Title.Render(orDefault(p.Name, "User Name")))
	fmt.Fprintf(w, "Email:  %s\n", p.Email)
	fmt.Fprintf(w, "Role:   %s\n", orDefault(p.Role, "USER"))
	fmt.Fprintf(w, "Phone:  %s\n", orDefault(p.Phone, "Not provided"))
	if p.CreatedAt.IsZero() {
		fmt.Fprintln(w, "Joined: unknown")
	} else {
		fmt.Fprintf(w, "Joined: %s (%s)\n", p.CreatedAt.Format("January 2, 2006"),
			humanize.RelTime(p.CreatedAt.Time, now, "ago", "from now"))
	}
	status := "Inactive"
	if p.Active {
		status = "Active"
	}
	fmt.Fprintf(w, "Status: %s\n", status)
}

func Users(w io.Writer, users []library.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, Default.Dim.Render("No users"))
		return
	}
	fmt.Fprintln(w, Default.Header.Render(fmt.Sprintf("%-5s %-25s %-30s %s", "ID", "Name", "Email", "Roles")))
	for _, u := range users {
		fmt.Fprintf(w, "%-5d %-25s %-30s %s\n", u.ID, truncateString(u.Name, 25), truncateString(u.Email, 30), strings.Join(u.Roles, ", "))
	}
}
