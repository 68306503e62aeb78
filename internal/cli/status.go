package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status",
	Long:  `Display the current Jargon configuration and session state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		return showUninitialized()
	}
	return showStatus()
}

func showUninitialized() error {
	printInfo("Jargon Status: Not initialized")
	fmt.Println()
	printInfo("To get started:")
	printInfo("  jargon signup --email <email> --name <name>")
	printInfo("  jargon login  --email <email>")
	return nil
}

func showStatus() error {
	printHeader("Jargon Status")

	printInfo("Backend:    %s", cfg.APIURL)
	printInfo("Config dir: %s", cfg.ConfigDir)

	sess := cfg.Session
	if sess == nil {
		printInfo("Session:    Not logged in")
		fmt.Println()
		printInfo("Run 'jargon login' to authenticate")
		return nil
	}

	role := "user"
	if sess.Principal == session.PrincipalOrg {
		role = "organization"
	}
	printInfo("Account:    %s (%s)", sess.Email, role)

	now := time.Now()
	switch {
	case sess.ExpiresAt.IsZero():
		printInfo("Session:    Active (no recorded expiry)")
	case sess.Valid(now):
		printInfo("Session:    Active, expires %s (%s from now)",
			sess.ExpiresAt.Format(time.RFC3339), sess.ExpiresAt.Sub(now).Round(time.Minute))
	default:
		printWarning("Session:    Expired %s - run 'jargon login' again",
			sess.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
