package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/FactorySim_Go/internal/bootstrap"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/mod"
)

func newModCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mod",
		Short: "Mod bundle operations",
		Long: `Check and produce mod bundles. Bundles are JSON (.json) or YAML (.yaml, .yml)
documents describing a catalog, opening stock, roster and crafting stations.

Examples:
  factorysim mod validate mods/bakery.yaml
  factorysim mod export starter.yaml
  factorysim --mod mods/bakery.yaml mod export bakery.json`,
	}

	cmd.AddCommand(newModValidateCommand())
	cmd.AddCommand(newModExportCommand())

	return cmd
}

func newModValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a bundle against the schema and its own cross references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			b, err := mod.NewLoader().LoadFile(args[0])
			if err != nil {
				return err
			}
			cat, err := b.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s %s is valid\n", b.Name, b.Version)
			fmt.Fprintf(out, "  Materials: %d  Products: %d  Workers: %d  Stations: %d\n\n",
				len(b.Materials), len(b.Products), len(b.InitialWorkers), len(b.CraftingStations))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tSALE PRICE\tMATERIAL COST\tCRAFTABLE")
			for _, p := range cat.Products() {
				cost, err := cat.TotalMaterialCost(p.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", p.Name, domain.Money(p.SalePrice), domain.Money(cost), p.Craftable())
			}
			return w.Flush()
		},
	}
}

func newModExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the starting facility (or --mod) as a bundle; format follows the extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fac, err := bootstrap.BuildFacility(context.Background(), cfg, mod.NewLoader(), nil)
			if err != nil {
				return err
			}
			if err := mod.WriteFile(args[0], fac.ExportBundle()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", fac.Name(), args[0])
			return nil
		},
	}
}
