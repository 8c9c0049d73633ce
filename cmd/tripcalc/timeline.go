package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
	"github.com/pkordes/perdiem-planner/backend/internal/timeline"
)

func newTimelineCmd() *cobra.Command {
	var (
		file    string
		format  string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Project a snapshot's events onto the home-time axis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := readSnapshot(cmd, file)
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			view := service.NewTimelineService(nil, timeline.Options{Logger: logger}).Project(snap)
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), view)
			case "text":
				return writeTimelineText(cmd.OutOrStdout(), view)
			default:
				return fmt.Errorf("--format must be json or text, got %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "snapshot JSON file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped events")
	return cmd
}

// writeTimelineText prints one line per event with its home-time start and
// end as "day N h:mm".
func writeTimelineText(w io.Writer, view service.TimelineView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tKEY\tSTART (HOME)\tEND (HOME)\tHOURS")
	for _, ev := range view.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", ev.Kind, ev.Key, homeClock(ev.Start), homeClock(ev.End), ev.Duration())
	}
	for _, s := range view.Skipped {
		fmt.Fprintf(tw, "%s\t%s\tskipped: %s\t\t\n", s.Kind, s.Key, s.Reason)
	}
	for _, l := range view.Layovers {
		fmt.Fprintf(tw, "%s\t%s[%d]\toverlaps previous by %.2fh\t\t\n", domain.EventFlight, l.List, l.SegmentIndex, -l.Gap)
	}
	return tw.Flush()
}

func homeClock(h float64) string {
	day, _ := localtime.SplitHours(h)
	return fmt.Sprintf("day %d %s", day+1, localtime.FormatHoursOfDay(h))
}
