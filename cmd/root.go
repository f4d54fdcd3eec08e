package cmd

import "github.com/spf13/cobra"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sbtmarket",
		Short: "Soulbound token catalog and market",
		Long: `
sbtmarket reconciles the token types of an SBT contract with their off-chain
metadata, lists the tokens a wallet holds and submits claim and admin
transactions.

Configuration is read from environment variables and an optional .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(apiCmd())
	cmd.AddCommand(catalogCmd())
	cmd.AddCommand(ownedCmd())
	cmd.AddCommand(claimCmd())
	cmd.AddCommand(adminCmd())

	return cmd
}
