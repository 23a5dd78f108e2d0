package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"library-portal/api"
	"library-portal/library"
	"library-portal/render"
)

// explain turns an engine error into something the user can act on. A
// failed fetch is rendered as the unavailable state; nothing replaces it.
func (a *app) explain(what string, err error) error {
	var apiErr *api.Error
	switch {
	case errors.Is(err, library.ErrNotLoggedIn):
		if errors.As(err, &apiErr) {
			return fmt.Errorf("your session has expired, run `library-portal login` again (%s)", apiErr.Message)
		}
		return fmt.Errorf("%w: run `library-portal login`", err)
	case errors.Is(err, library.ErrForbidden):
		return fmt.Errorf("%w: this needs an administrator account", err)
	case errors.Is(err, library.ErrDataUnavailable):
		render.Unavailable(a.out, what, err)
		return errShown
	}
	var formErr *library.FormError
	if errors.As(err, &formErr) {
		return fmt.Errorf("invalid input: %w", err)
	}
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return fmt.Errorf("%s: %s", apiErr.Message, (&library.FormError{Fields: apiErr.Fields}).Error())
	}
	return err
}

func (a *app) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.prompt("Email: ")
			}
			password, err := a.password("Password: ")
			if err != nil {
				return err
			}
			s, err := a.mgr.Login(cmd.Context(), library.LoginForm{Email: email, Password: password})
			if err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) {
					return errors.New(apiErr.Message)
				}
				return a.explain("", err)
			}
			render.Header(a.out, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.prompt("Email: ")
			}
			password, err := a.password("Password (at least 6 characters): ")
			if err != nil {
				return err
			}
			confirm, err := a.password("Confirm password: ")
			if err != nil {
				return err
			}
			form := library.RegisterForm{Email: email, Password: password, ConfirmPassword: confirm}
			if err := a.mgr.Register(cmd.Context(), form); err != nil {
				return a.explain("", err)
			}
			fmt.Fprintln(a.out, "Registration successful! Please log in with `library-portal login`.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who is signed in",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			render.Header(a.out, a.mgr.Session())
		},
	}
}
