package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aminethecode/agenda/internal/identity"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Email    string
	Name     string
	Password string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "register",
		Short:         "Create an account and sign in",
		Example:       `  agenda register --email carol@example.com --name Carol`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (omit to be prompted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runRegister(opts *RegisterOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	password, err := resolvePassword(opts.Password, cmd)
	if err != nil {
		return err
	}

	user, err := env.identity.Register(cmd.Context(), opts.Email, password, opts.Name)
	if err != nil {
		return authError(err)
	}

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(user)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s\n", user.Email)
	return nil
}

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "login",
		Short:         "Sign in to an existing account",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (omit to be prompted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	password, err := resolvePassword(opts.Password, cmd)
	if err != nil {
		return err
	}

	user, err := env.identity.Login(cmd.Context(), opts.Email, password)
	if err != nil {
		return authError(err)
	}

	out := formatter(opts.RootOptions, cmd)
	if out.JSON() {
		return out.Success(user)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Email)
	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "End the active session",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.identity.Logout(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "logout", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

// PasswdOptions holds flags for the passwd command.
type PasswdOptions struct {
	*RootOptions
	Current string
	New     string
}

// NewPasswdCommand creates the passwd command.
func NewPasswdCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PasswdOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "passwd",
		Short:         "Change the signed-in account's password",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Current, "current", "", "current password (omit to be prompted)")
	cmd.Flags().StringVar(&opts.New, "new", "", "new password (omit to be prompted)")

	return cmd
}

func runPasswd(opts *PasswdOptions, cmd *cobra.Command) error {
	env, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	current, err := promptPassword(opts.Current, "Current password: ", cmd)
	if err != nil {
		return err
	}
	next, err := promptPassword(opts.New, "New password: ", cmd)
	if err != nil {
		return err
	}

	if err := env.identity.ChangePassword(cmd.Context(), current, next); err != nil {
		return authError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
	return nil
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in account",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			user, ok := env.identity.CurrentUser()
			if !ok {
				return NewExitError(ExitFailure, "not signed in")
			}

			out := formatter(rootOpts, cmd)
			if out.JSON() {
				return out.Success(user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

// resolvePassword returns the --password value or prompts for one on the
// terminal without echo.
func resolvePassword(flagValue string, cmd *cobra.Command) (string, error) {
	return promptPassword(flagValue, "Password: ", cmd)
}

func promptPassword(flagValue, label string, cmd *cobra.Command) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", WrapExitError(ExitCommandError, "read password", err)
	}
	return string(raw), nil
}

// authError maps identity failures to user-facing exit errors.
func authError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrWeakPassword),
		errors.Is(err, identity.ErrNotAuthenticated):
		return WrapExitError(ExitFailure, "authentication failed", err)
	default:
		return WrapExitError(ExitCommandError, "identity store", err)
	}
}
