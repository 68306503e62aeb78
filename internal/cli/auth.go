package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/api"
	"github.com/jargon-id/jargon/internal/logging"
	"github.com/jargon-id/jargon/internal/session"
)

// --- Signup Command ---

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long:  `Create a new Jargon account. The backend emails a verification link.`,
	Example: `  jargon signup --email alice@example.com --name "Alice A" --username alice
  JARGON_PASSWORD=... jargon signup --email alice@example.com`,
	RunE: runSignup,
}

func init() {
	f := signupCmd.Flags()
	f.String("email", "", "Account email (required)")
	f.String("name", "", "Full name")
	f.String("username", "", "Username")
	f.String("phone", "", "Primary phone number")
	f.String("password", "", "Password (or set JARGON_PASSWORD)")
	signupCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(signupCmd)
}

func passwordFromFlags(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("JARGON_PASSWORD")
	}
	if password == "" {
		return "", fmt.Errorf("password required - pass --password or set JARGON_PASSWORD")
	}
	return password, nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	if err := RequireConfig(); err != nil {
		return err
	}

	password, err := passwordFromFlags(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	username, _ := cmd.Flags().GetString("username")
	phone, _ := cmd.Flags().GetString("phone")

	msg, err := backendClient().Signup(cmd.Context(), api.SignupParams{
		Email:        email,
		Password:     password,
		Name:         name,
		Username:     username,
		PrimaryPhone: phone,
	})
	if err != nil {
		return err
	}

	if msg == "" {
		msg = "Account created - check your email for a verification link"
	}
	printSuccess("%s", msg)
	return nil
}

// --- Login Command ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session",
	Long:  `Exchange credentials for a bearer session stored in the config dir.`,
	RunE:  runLogin,
}

func init() {
	f := loginCmd.Flags()
	f.String("email", "", "Account email (required)")
	f.String("password", "", "Password (or set JARGON_PASSWORD)")
	f.Bool("org", false, "Log in as an organization principal")
	loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := RequireConfig(); err != nil {
		return err
	}

	password, err := passwordFromFlags(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	asOrg, _ := cmd.Flags().GetBool("org")
	principal := session.PrincipalUser
	if asOrg {
		principal = session.PrincipalOrg
	}

	sess, err := backendClient().Login(cmd.Context(), api.LoginParams{
		Email:    email,
		Password: password,
	}, principal)
	if err != nil {
		// A failed login never leaves a half-valid stored credential behind.
		_ = cfg.ClearSession()
		return err
	}

	if err := cfg.SetSession(sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	logging.Info("Logged in",
		logging.String("email", email),
		logging.String("principal", string(principal)))
	if !sess.ExpiresAt.IsZero() {
		logging.Info("Session expires", logging.String("at", sess.ExpiresAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}

// --- Logout Command ---

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := RequireConfig(); err != nil {
		return err
	}
	if cfg.Session == nil {
		printInfo("Already logged out")
		return nil
	}
	if err := cfg.ClearSession(); err != nil {
		return err
	}
	printSuccess("Logged out")
	return nil
}

// --- Verify Email Command ---

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email <token>",
	Short: "Confirm an emailed verification token",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerifyEmail,
}

func init() {
	rootCmd.AddCommand(verifyEmailCmd)
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	if err := RequireConfig(); err != nil {
		return err
	}

	msg, err := backendClient().VerifyEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Email verified"
	}
	printSuccess("%s", msg)
	return nil
}

// --- Forgot Password Command ---

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Ask the backend to send a password reset link",
	Args:  cobra.ExactArgs(1),
	RunE:  runForgotPassword,
}

func init() {
	rootCmd.AddCommand(forgotPasswordCmd)
}

func runForgotPassword(cmd *cobra.Command, args []string) error {
	if err := RequireConfig(); err != nil {
		return err
	}

	msg, err := backendClient().ForgotPassword(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Password reset email sent"
	}
	printSuccess("%s", msg)
	return nil
}
