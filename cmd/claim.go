package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/types"
)

func claimCmd() *cobra.Command {
	var acceptPolicy bool

	cmd := &cobra.Command{
		Use:   "claim <type_id>",
		Short: "Claim one token of a type with the configured wallet",
		Long: `
Mint one token of the given type to the wallet of SIGNER_PRIVATE_KEY.

The claim policy of the type has to be accepted with --accept-policy. The
transaction is submitted once; a failed claim is reported and not retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeId, err := parseTypeId(args[0])
			if err != nil {
				return err
			}

			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.market.AcknowledgePolicy(market.LocalCaller, typeId, acceptPolicy); err != nil {
				return err
			}
			if a.cfg.GetCatalogConfig().ResolveTokenTypes {
				// load the wallet's holdings so an already owned type is refused
				if _, err := a.catalog.ScanOwned(cmd.Context(), a.market.Session().Address()); err != nil {
					return err
				}
			}

			res, err := a.market.Claim(cmd.Context(), market.LocalCaller, typeId)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	cmd.Flags().BoolVar(&acceptPolicy, "accept-policy", false, "accept the claim policy of the token type")

	return cmd
}

func parseTypeId(raw string) (uint64, error) {
	typeId, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || typeId == 0 {
		return 0, types.NewInvalidValueError("type_id", raw, "must be a positive integer")
	}
	return typeId, nil
}
