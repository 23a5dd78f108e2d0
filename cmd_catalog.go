package main

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"library-portal/browse"
	"library-portal/library"
	"library-portal/render"
)

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, s)
	}
	return id, nil
}

func (a *app) booksCmd() *cobra.Command {
	var (
		search, category, status string
		offline                  bool
	)
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List and search the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := library.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			spec := library.FilterSpec{SearchText: search, Category: category, Status: st}
			books, err := a.mgr.SearchCatalog(cmd.Context(), spec, offline)
			if err != nil {
				return a.explain("the catalog", err)
			}
			if books.Stale {
				render.Snapshot(a.out, books.FetchedAt, time.Now())
			}
			render.Books(a.out, books.Records)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&search, "search", "s", "", "match title, author or ISBN (case-insensitive)")
	f.StringVarP(&category, "category", "c", "", "only this category")
	f.StringVar(&status, "status", "all", "all, available or newest")
	f.BoolVar(&offline, "offline", false, "show the last fetched catalog instead of calling the backend")
	return cmd
}

func (a *app) bookCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "book <bookId>",
		Short: "Show one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			books, err := a.mgr.Catalog(cmd.Context(), offline)
			if err != nil {
				return a.explain("the catalog", err)
			}
			b, ok := library.FindBook(books.Records, id)
			if !ok {
				return fmt.Errorf("book with ID %d not found", id)
			}
			render.Book(a.out, b)
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "use the last fetched catalog")
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	var (
		offline bool
		days    int
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively and borrow a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.mgr.Catalog(cmd.Context(), offline)
			if err != nil {
				return a.explain("the catalog", err)
			}
			var notice string
			if books.Stale {
				notice = fmt.Sprintf("Offline snapshot from %s", books.FetchedAt.Format("Jan 2, 2006 15:04"))
			}

			final, err := tea.NewProgram(browse.New(books.Records, notice), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			picked, ok := final.(browse.Model).Selected()
			if !ok {
				return nil
			}

			render.Book(a.out, picked)
			if !picked.Available() {
				fmt.Fprintln(a.out, "No copies are available right now.")
				return nil
			}
			if offline {
				fmt.Fprintln(a.out, "Borrowing needs the backend; run without --offline.")
				return nil
			}
			if !a.confirm(fmt.Sprintf("Borrow %q?", picked.Title)) {
				return nil
			}
			return a.borrow(cmd, picked.ID, days)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "browse the last fetched catalog")
	cmd.Flags().IntVar(&days, "days", 0, "loan length in days (default from config)")
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.mgr.Categories(cmd.Context())
			if err != nil {
				return a.explain("categories", err)
			}
			render.Categories(a.out, cats)
			return nil
		},
	}
}
