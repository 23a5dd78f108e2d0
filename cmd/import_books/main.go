// Command import_books loads a JSON book list into the catalog through the
// backend API, using the administrator session saved by `library-portal login`.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"library-portal/api"
	"library-portal/config"
	"library-portal/library"
	"library-portal/render"
)

// entry is one book of the import file.
type entry struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	ISBN        string `json:"isbn"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func readEntries(path string) ([]entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// importBooks creates every entry and reports progress to out. It returns the
// number of successes and failures.
func importBooks(ctx context.Context, client *api.Client, s library.Session, entries []entry, out io.Writer) (int, int, error) {
	cats, err := client.Categories(ctx, s)
	if err != nil {
		return 0, 0, fmt.Errorf("load categories: %w", err)
	}
	categoryIDs := make(map[string]int64, len(cats))
	for _, c := range cats {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	successCount := 0
	errorCount := 0

	for _, e := range entries {
		fmt.Fprintf(out, "Importing: %s by %s... ", e.Title, e.Author)

		if err := library.ValidateForm(e); err != nil {
			fmt.Fprintf(out, "ERROR - %v\n", err)
			errorCount++
			continue
		}

		book := api.NewBook{Title: e.Title, Author: e.Author, ISBN: e.ISBN, Description: e.Description}
		if e.Category != "" {
			id, ok := categoryIDs[strings.ToLower(e.Category)]
			if !ok {
				fmt.Fprintf(out, "(unknown category %q) ", e.Category)
			}
			book.CategoryID = id
		}

		created, err := client.CreateBook(ctx, s, book)
		if err != nil {
			fmt.Fprintf(out, "ERROR - %v\n", err)
			errorCount++
			continue
		}

		fmt.Fprintf(out, "SUCCESS (ID: %d)\n", created.ID)
		successCount++
	}
	return successCount, errorCount, nil
}

func main() {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "import_books <books.json>",
		Short:        "Add the books listed in a JSON file to the catalog",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			db, err := library.NewDatabase(opts.StorePath())
			if err != nil {
				return err
			}
			defer db.Close()

			session, err := db.LoadSession()
			if err != nil {
				return err
			}
			if !session.IsAdmin() {
				return fmt.Errorf("log in as an administrator with `library-portal login` first")
			}

			entries, err := readEntries(args[0])
			if err != nil {
				return err
			}

			loc, err := opts.Location()
			if err != nil {
				return err
			}
			client := api.NewClient(api.Config{
				BaseURL:           opts.BaseURL,
				Timeout:           opts.RequestTimeout,
				RequestsPerSecond: opts.RequestsPerSecond,
				Burst:             opts.RequestBurst,
				Location:          loc,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Importing %d books into %s...\n", len(entries), opts.BaseURL)
			successCount, errorCount, err := importBooks(cmd.Context(), client, session, entries, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nImport complete!\n")
			fmt.Fprintf(out, "Successfully imported: %d books\n", successCount)
			fmt.Fprintf(out, "Errors: %d\n", errorCount)

			if successCount > 0 {
				books, err := client.Books(cmd.Context(), session)
				if err != nil {
					fmt.Fprintf(out, "Error retrieving books: %v\n", err)
					return nil
				}
				fmt.Fprintln(out, "\nCatalog:")
				render.Books(out, books)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (toml, yaml or json)")
	cmd.Flags().String("base-url", "", "backend API root")
	cmd.Flags().String("data-dir", "", "directory holding the local store")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
