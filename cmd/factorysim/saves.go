package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/store"
)

const (
	storeTimeout = 10 * time.Second
	timeLayout   = "2006-01-02 15:04:05"
)

var errSavesDisabled = errors.New("saves are disabled (STORE_DRIVER=none)")

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverNone {
		return nil, errSavesDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return store.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
}

func newSavesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Save slot operations",
		Long: `Inspect the save slots of the configured store (STORE_DRIVER / STORE_DSN).

Examples:
  factorysim saves list
  factorysim saves delete day5`,
	}

	cmd.AddCommand(newSavesListCommand())
	cmd.AddCommand(newSavesDeleteCommand())

	return cmd
}

func newSavesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			saves, err := st.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(saves) == 0 {
				fmt.Fprintln(out, "No saves found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tFACTORY\tDAY\tBALANCE\tSAVED AT")
			for _, s := range saves {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					s.Slot, s.Name, s.Day, domain.Money(s.Balance), s.SavedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newSavesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SLOT",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted save %s\n", args[0])
			return nil
		},
	}
}
