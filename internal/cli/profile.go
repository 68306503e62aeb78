package cli

import (
	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Complete your profile after signup",
	RunE:  runProfileCreate,
}

func init() {
	f := profileCreateCmd.Flags()
	f.String("name", "", "Full name")
	f.String("username", "", "Username")
	f.String("phone", "", "Primary phone number")
	f.String("address", "", "Address")
	f.String("dob", "", "Date of birth (YYYY-MM-DD)")
	profileCmd.AddCommand(profileCreateCmd)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	sess, err := RequireSession()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	username, _ := cmd.Flags().GetString("username")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")
	dob, _ := cmd.Flags().GetString("dob")

	msg, err := backendClient().CreateProfile(cmd.Context(), sess, api.ProfileParams{
		Name:         name,
		Username:     username,
		PrimaryPhone: phone,
		Address:      address,
		DateOfBirth:  dob,
	})
	if err != nil {
		return err
	}

	if msg == "" {
		msg = "Profile created"
	}
	printSuccess("%s", msg)
	return nil
}
