package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"library-portal/library"
	"library-portal/render"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.mgr.Profile(cmd.Context())
			if err != nil {
				return a.explain("your profile", err)
			}
			render.Profile(a.out, p, time.Now())
			return nil
		},
	}

	var name, phone string
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Update your name or phone; fields not given are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("phone") {
				return fmt.Errorf("nothing to update: pass --name and/or --phone")
			}
			current, err := a.mgr.Profile(cmd.Context())
			if err != nil {
				return a.explain("your profile", err)
			}
			form := library.ProfileForm{Name: current.Name, Phone: current.Phone}
			if flags.Changed("name") {
				form.Name = name
			}
			if flags.Changed("phone") {
				form.Phone = phone
			}
			p, err := a.mgr.UpdateProfile(cmd.Context(), form)
			if err != nil {
				return a.explain("your profile", err)
			}
			fmt.Fprintln(a.out, "Profile updated successfully!")
			render.Profile(a.out, p, time.Now())
			return nil
		},
	}
	edit.Flags().StringVar(&name, "name", "", "display name")
	edit.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.AddCommand(edit)
	return cmd
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (administrators only)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.mgr.Users(cmd.Context())
			if err != nil {
				return a.explain("users", err)
			}
			render.Users(a.out, users)
			return nil
		},
	}

	var name, email string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.prompt("Name: ")
			}
			if email == "" {
				email = a.prompt("Email: ")
			}
			password, err := a.password("Password: ")
			if err != nil {
				return err
			}
			u, err := a.mgr.CreateUser(cmd.Context(), library.CreateUserForm{Name: name, Email: email, Password: password})
			if err != nil {
				return a.explain("users", err)
			}
			fmt.Fprintf(a.out, "Created user '%s' with ID %d\n", u.Name, u.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "account email")

	del := &cobra.Command{
		Use:   "delete <userId>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			if !a.confirm(fmt.Sprintf("Delete user %d?", id)) {
				return nil
			}
			if err := a.mgr.DeleteUser(cmd.Context(), id); err != nil {
				return a.explain("users", err)
			}
			fmt.Fprintf(a.out, "Deleted user %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
