package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/logging"
	"github.com/jargon-id/jargon/internal/vault"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Organization operations",
}

func init() {
	rootCmd.AddCommand(orgCmd)
}

// --- Org Request Command ---

var orgRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "File a disclosure request against a user",
	Long: `Ask a user to disclose one or more vault attributes. The user has the
given number of minutes to respond before the request expires on its own.`,
	Example: `  jargon org request --type nin --type bvn --user alice@example.com \
      --reason "KYC verification" --minutes 30`,
	RunE: runOrgRequest,
}

func init() {
	f := orgRequestCmd.Flags()
	f.StringSlice("type", nil, "Attribute type(s) to request (repeatable)")
	f.String("user", "", "Email of the user whose data is requested")
	f.String("reason", "", "Why the disclosure is needed")
	f.Int("minutes", 30, fmt.Sprintf("Response window in minutes (%d-%d)", vault.MinDurationMinutes, vault.MaxDurationMinutes))
	orgRequestCmd.MarkFlagRequired("type")
	orgRequestCmd.MarkFlagRequired("user")
	orgRequestCmd.MarkFlagRequired("reason")
	orgCmd.AddCommand(orgRequestCmd)
}

func runOrgRequest(cmd *cobra.Command, args []string) error {
	sess, err := RequireSession()
	if err != nil {
		return err
	}

	types, _ := cmd.Flags().GetStringSlice("type")
	user, _ := cmd.Flags().GetString("user")
	reason, _ := cmd.Flags().GetString("reason")
	minutes, _ := cmd.Flags().GetInt("minutes")

	msg, err := backendClient().RequestData(cmd.Context(), sess, vault.Ask{
		DataTypes:   types,
		Email:       user,
		Description: reason,
		Minutes:     minutes,
	})
	if err != nil {
		return err
	}

	logging.Info("Disclosure request filed",
		logging.String("user", user),
		logging.String("types", strings.Join(types, ",")),
		logging.Int("minutes", vault.ClampDuration(minutes)))
	if msg != "" {
		printInfo("%s", msg)
	}
	return nil
}

func unknownDataTypeError(got string) error {
	values := make([]string, 0, len(vault.DataTypes))
	for _, dt := range vault.DataTypes {
		values = append(values, dt.Value)
	}
	return fmt.Errorf("unknown data type %q (known: %s)", got, strings.Join(values, ", "))
}
