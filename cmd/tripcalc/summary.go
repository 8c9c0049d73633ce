package main

import (
	"github.com/spf13/cobra"

	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/expense"
)

func newSummaryCmd() *cobra.Command {
	var file, ratesPath string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total a snapshot's per-diem and travel expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := readSnapshot(cmd, file)
			if err != nil {
				return err
			}
			fx := currency.Identity
			if ratesPath != "" {
				if fx, err = currency.Load(ratesPath); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), expense.Summarize(snap, fx))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "snapshot JSON file (- for stdin)")
	cmd.Flags().StringVar(&ratesPath, "rates", "", "currency rate table JSON")
	return cmd
}
