package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"library-portal/library"
	"library-portal/render"
)

func (a *app) borrow(cmd *cobra.Command, bookID int64, days int) error {
	loan, err := a.mgr.BorrowBook(cmd.Context(), bookID, days)
	if err != nil {
		return a.explain("the catalog", err)
	}
	view, err := a.mgr.Classifier().Classify(loan, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Book borrowed successfully!")
	render.Loan(a.out, view)
	return nil
}

func (a *app) borrowCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "borrow <bookId>",
		Short: "Borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			return a.borrow(cmd, id, days)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 0, "loan length in days (default from config)")
	return cmd
}

func (a *app) returnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return <loanId>",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("loan", args[0])
			if err != nil {
				return err
			}
			loan, err := a.mgr.ReturnBook(cmd.Context(), id)
			if err != nil {
				return a.explain("borrowings", err)
			}
			title := loan.BookTitle
			if title == "" {
				title = fmt.Sprintf("loan #%d", loan.ID)
			}
			fmt.Fprintf(a.out, "Returned %s.\n", title)
			return nil
		},
	}
}

func (a *app) borrowingsCmd() *cobra.Command {
	var (
		tab     string
		offline bool
	)
	cmd := &cobra.Command{
		Use:   "borrowings",
		Short: "Show your borrowing history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := library.ParseLoanTab(tab)
			if err != nil {
				return err
			}
			now := time.Now()
			views, loans, err := a.mgr.Borrowings(cmd.Context(), now, t, offline)
			if err != nil {
				return a.explain("your borrowings", err)
			}
			if loans.Stale {
				render.Snapshot(a.out, loans.FetchedAt, now)
			}
			render.Loans(a.out, views, t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&tab, "tab", "t", "all", "all, current, overdue or returned")
	cmd.Flags().BoolVar(&offline, "offline", false, "show the last fetched history")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise your borrowings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			summary, loans, err := a.mgr.Statistics(cmd.Context(), now, offline)
			if err != nil {
				return a.explain("your borrowings", err)
			}
			if loans.Stale {
				render.Snapshot(a.out, loans.FetchedAt, now)
			}
			render.Stats(a.out, summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "use the last fetched history")
	return cmd
}
