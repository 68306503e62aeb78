package cli

import (
	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/api"
	"github.com/jargon-id/jargon/internal/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage vault attributes",
}

func init() {
	rootCmd.AddCommand(vaultCmd)
}

// --- Vault Add Command ---

var vaultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store an identity attribute in the vault",
	Long: `Send one identity attribute to the remote vault. The payload is the
ciphertext produced by the platform's encryption flow together with its
hash; this client never sees or produces plaintext secrets.`,
	Example: `  jargon vault add --type nin --data <ciphertext> --hash <sha256>`,
	RunE:    runVaultAdd,
}

func init() {
	f := vaultAddCmd.Flags()
	f.String("type", "", "Attribute type (see 'jargon vault types')")
	f.String("data", "", "Encrypted attribute payload")
	f.String("hash", "", "Hash of the underlying attribute")
	vaultAddCmd.MarkFlagRequired("type")
	vaultAddCmd.MarkFlagRequired("data")
	vaultAddCmd.MarkFlagRequired("hash")
	vaultCmd.AddCommand(vaultAddCmd)
}

func runVaultAdd(cmd *cobra.Command, args []string) error {
	sess, err := RequireSession()
	if err != nil {
		return err
	}

	typeFlag, _ := cmd.Flags().GetString("type")
	dt, ok := vault.Lookup(typeFlag)
	if !ok {
		return unknownDataTypeError(typeFlag)
	}

	data, _ := cmd.Flags().GetString("data")
	hash, _ := cmd.Flags().GetString("hash")

	msg, err := backendClient().SaveVaultData(cmd.Context(), sess, api.SaveDataParams{
		DataType:      dt.Value,
		EncryptedData: data,
		DataHash:      hash,
	})
	if err != nil {
		return err
	}

	if msg == "" {
		msg = "Data saved"
	}
	printSuccess("%s (%s)", msg, dt.FullLabel)
	return nil
}

// --- Vault Types Command ---

var vaultTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List attribute types the vault accepts",
	RunE:  runVaultTypes,
}

func init() {
	vaultCmd.AddCommand(vaultTypesCmd)
}

func runVaultTypes(cmd *cobra.Command, args []string) error {
	printHeader("Vault attribute types")
	for _, dt := range vault.DataTypes {
		printInfo("%-16s %s", dt.Value, dt.FullLabel)
	}
	return nil
}
