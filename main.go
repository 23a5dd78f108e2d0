package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"library-portal/api"
	"library-portal/config"
	"library-portal/library"
	"library-portal/log"
)

// app is what every command runs against, built once in PersistentPreRunE.
type app struct {
	opts     *config.Options
	client   *api.Client
	mgr      *library.LibraryManager
	in       *bufio.Scanner
	out      io.Writer
	closeLog func()

	// readPassword prompts for a secret without echoing it.
	readPassword func(prompt string) (string, error)
}

// readPassword securely reads a password with masking
func readPassword(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w) // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

func (a *app) password(prompt string) (string, error) {
	p, err := a.readPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return p, nil
}

func (a *app) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) confirm(question string) bool {
	answer := strings.ToLower(a.prompt(question + " [y/N]: "))
	return answer == "y" || answer == "yes"
}

func (a *app) close() {
	if a.mgr != nil {
		a.mgr.Close()
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	a.readPassword = func(prompt string) (string, error) { return readPassword(a.out, prompt) }
	var cfgFile string

	root := &cobra.Command{
		Use:           "library-portal",
		Short:         "Browse the library catalog and manage your borrowings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cfgFile, cmd)
		},
	}
	root.SetOut(os.Stdout)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (toml, yaml or json)")
	flags.String("base-url", "", "backend API root, e.g. http://localhost:8080/api")
	flags.String("data-dir", "", "directory for the local store and logs")
	flags.String("log-level", "", "debug, info, warn or error")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.booksCmd(),
		a.bookCmd(),
		a.browseCmd(),
		a.categoriesCmd(),
		a.borrowCmd(),
		a.returnCmd(),
		a.borrowingsCmd(),
		a.statsCmd(),
		a.profileCmd(),
		a.usersCmd(),
	)
	return root, a
}

func (a *app) setup(cfgFile string, cmd *cobra.Command) error {
	opts, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.opts = opts

	loc, err := opts.Location()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	a.closeLog = log.Init(log.Options{
		File:       opts.LogPath(),
		Level:      opts.LogLevel,
		MaxSize:    opts.LogFileMaxSize,
		MaxBackups: opts.LogFileMaxBackups,
		MaxAge:     opts.LogFileMaxAge,
		Compress:   opts.LogCompress,
	})

	a.client = api.NewClient(api.Config{
		BaseURL:           opts.BaseURL,
		Timeout:           opts.RequestTimeout,
		RequestsPerSecond: opts.RequestsPerSecond,
		Burst:             opts.RequestBurst,
		Location:          loc,
	})

	a.mgr, err = library.NewLibraryManager(opts.StorePath(), a.client, opts.ManagerOptions())
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	log.Debug("started",
		zap.String("command", cmd.CommandPath()),
		zap.String("base_url", opts.BaseURL),
		zap.String("store", opts.StorePath()),
	)
	return nil
}

// errShown means the command already told the user what went wrong.
var errShown = errors.New("reported")

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	if err != nil {
		log.Warn("command failed", zap.Error(err))
		if !errors.Is(err, errShown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
