package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/contract"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the claimable token types",
		Long: `
Scan every token type id up to MAX_TYPE_ID and print the active types together
with their metadata as JSON. Types whose chain read or metadata fetch fails are
left out and reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := a.catalog.ScanAvailable(cmd.Context())
			if err != nil {
				return err
			}
			reportFailures(a.logger, snap.Failures())
			return printJSON(snap)
		},
	}

	return cmd
}

func ownedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owned <address>",
		Short: "Print the tokens held by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := contract.ParseAddress(args[0])
			if err != nil {
				return err
			}

			a, err := newCLIApp(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := a.catalog.ScanOwned(cmd.Context(), owner)
			if err != nil {
				return err
			}
			reportFailures(a.logger, snap.Failures())
			return printJSON(snap)
		},
	}

	return cmd
}

func reportFailures(logger *slog.Logger, failures []catalog.ItemError) {
	for _, f := range failures {
		logger.Warn("item skipped",
			slog.String("key", f.Key),
			slog.String("stage", f.Stage),
			slog.Any("error", f.Err))
	}
}
