package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/api"
	"github.com/jargon-id/jargon/internal/config"
	"github.com/jargon-id/jargon/internal/logging"
	"github.com/jargon-id/jargon/internal/session"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// App state
	cfg    *config.Config
	cfgErr error
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "jargon",
	Short: "Consent-first personal data vault",
	Long: `Jargon keeps your identity attributes (NIN, BVN, passport number, ...)
in a remote vault. Organizations file time-bounded requests to see a
specific attribute; nothing is disclosed until you approve, and an
unanswered request expires on its own.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// SetVersion sets the version string
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func initLogging() {
	logging.InitDefault()
}

func initConfig() {
	cfg, cfgErr = config.LoadOrDefault(os.Getenv("JARGON_CONFIG_DIR"))
}

// Config returns the loaded config (may be nil)
func Config() *config.Config {
	return cfg
}

// RequireConfig returns an error if config could not be loaded
func RequireConfig() error {
	if cfgErr != nil {
		return cfgErr
	}
	if cfg == nil {
		return fmt.Errorf("jargon configuration unavailable")
	}
	return nil
}

// RequireSession returns the stored credential, or an error telling the
// user to log in. Expiry is checked here so a dead session fails before any
// network call.
func RequireSession() (session.Session, error) {
	if err := RequireConfig(); err != nil {
		return session.Session{}, err
	}
	if cfg.Session == nil {
		return session.Session{}, fmt.Errorf("not logged in - run 'jargon login' first")
	}
	if !cfg.Session.Valid(time.Now()) {
		// Drop the dead credential so status reflects reality.
		_ = cfg.ClearSession()
		return session.Session{}, fmt.Errorf("session expired - run 'jargon login' again")
	}
	return *cfg.Session, nil
}

// backendClient builds the API client for the configured backend.
func backendClient() *api.Client {
	return api.NewClient(cfg.APIURL)
}
