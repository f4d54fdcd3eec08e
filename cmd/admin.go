package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/types"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer token types with the admin wallet",
		Long: `
Token type lifecycle commands. Every mutation requires the wallet of
SIGNER_PRIVATE_KEY to be ADMIN_ADDRESS.`,
	}

	cmd.AddCommand(adminTypesCmd())
	cmd.AddCommand(adminTemplatesCmd())
	cmd.AddCommand(adminPreviewCmd())
	cmd.AddCommand(adminCreateCmd())
	cmd.AddCommand(adminStatusCmd("activate", true))
	cmd.AddCommand(adminStatusCmd("deactivate", false))
	cmd.AddCommand(adminBurnCmd())

	return cmd
}

func adminTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Print every initialized token type, active or not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := a.catalog.ScanDashboard(cmd.Context())
			if err != nil {
				return err
			}
			reportFailures(a.logger, snap.Failures())
			return printJSON(snap)
		},
	}
}

func adminTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the metadata templates of TEMPLATE_REPO",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			list, err := a.templates.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
}

func adminPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the metadata a template resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			md, err := a.templates.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(struct {
				File     string         `json:"file"`
				Uri      string         `json:"uri"`
				Metadata types.Metadata `json:"metadata"`
			}{
				File:     args[0],
				Uri:      a.templates.BuildURI(args[0]),
				Metadata: md,
			})
		},
	}
}

func adminCreateCmd() *cobra.Command {
	var req market.CreateTypeRequest

	cmd := &cobra.Command{
		Use:   "create <type_id>",
		Short: "Create a token type from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeId, err := parseTypeId(args[0])
			if err != nil {
				return err
			}
			req.TypeId = typeId

			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			res, err := a.market.CreateType(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	cmd.Flags().StringVar(&req.Template, "template", "", "template file name, e.g. green_bond.json")
	cmd.Flags().Uint64Var(&req.MaxSupply, "max-supply", 0, "maximum number of tokens of the type")
	cmd.Flags().BoolVar(&req.Burnable, "burnable", false, "allow the admin to burn tokens of the type")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("max-supply")

	return cmd
}

func adminStatusCmd(use string, active bool) *cobra.Command {
	short := "Make a token type claimable"
	if !active {
		short = "Stop claims of a token type"
	}

	return &cobra.Command{
		Use:   use + " <type_id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeId, err := parseTypeId(args[0])
			if err != nil {
				return err
			}

			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			res, err := a.market.SetTypeStatus(cmd.Context(), typeId, active)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
}

func adminBurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "burn <token_id>",
		Short: "Burn a token of a burnable type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			res, err := a.market.Burn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
}
