package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/app"
)

var (
	email    string
	password string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Sessions.SignUp(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account created for %s, sign in to continue\n", identity.Email)
			return nil
		})
	},
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Sessions.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", identity.Email)
			return nil
		})
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			err := a.Sessions.SignOut(ctx)
			// The local session is gone even when the backend call failed.
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			state := a.Sessions.Current()
			if state.Identity == nil {
				return errSignedOut
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", state.Identity.Email, state.Identity.ID)
			return nil
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, signinCmd} {
		cmd.Flags().StringVar(&email, "email", "", "account email")
		cmd.Flags().StringVar(&password, "password", "", "account password")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
}
