// Command tripcalc runs the planner's calculations on snapshot files without
// a server: project a trip's timeline, total its expenses, or accrue one
// day's M&IE.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	_ "time/tzdata" // zone data for hosts without /usr/share/zoneinfo

	"github.com/spf13/cobra"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripcalc",
		Short:         "Trip timeline and per-diem calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTimelineCmd(), newSummaryCmd(), newAccrueCmd())
	return root
}

// readSnapshot decodes a snapshot from path, or from stdin when path is "-".
func readSnapshot(cmd *cobra.Command, path string) (domain.Snapshot, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return domain.Snapshot{}, err
		}
		defer f.Close()
		r = f
	}
	var snap domain.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
