package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/FactorySim_Go/internal/event"
)

func newDeadLettersCommand() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "deadletters [FILE]",
		Short: "Summarize the dead-letter log of events whose handlers failed",
		Long: `Reads the dead-letter log (EVENT_DEADLETTER_PATH unless FILE is given),
counts failed events by type and lists the most recent ones.

Examples:
  factorysim deadletters
  factorysim deadletters logs/event_deadletter.jsonl --tail 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := cfg.DeadLetterPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no dead-letter log configured")
			}

			entries, err := event.ReadDeadLetterFile(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No dead-lettered events in %s\n", path)
				return nil
			}

			byType := map[event.Type]int{}
			for _, e := range entries {
				byType[e.Event.Type]++
			}
			types := make([]event.Type, 0, len(byType))
			for t := range byType {
				types = append(types, t)
			}
			sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EVENT TYPE\tCOUNT")
			for _, t := range types {
				fmt.Fprintf(w, "%s\t%d\n", t, byType[t])
			}
			fmt.Fprintln(w)

			recent := entries
			if tail > 0 && len(recent) > tail {
				recent = recent[len(recent)-tail:]
			}
			fmt.Fprintln(w, "RECORDED\tEVENT TYPE\tCAUSE")
			for _, e := range recent {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.RecordedAt.Format(timeLayout), e.Event.Type, e.Cause)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 10, "Number of recent entries to list (0 lists all)")
	return cmd
}
