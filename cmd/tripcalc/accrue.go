package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/perdiem"
)

func newAccrueCmd() *cobra.Command {
	var (
		day, days int
		mie       float64
		foreign   bool
		skip      []string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Compute one day's M&IE",
		Example: "  tripcalc accrue --day 1 --days 3 --mie 79\n" +
			"  tripcalc accrue --day 2 --days 3 --mie 144 --foreign --skip B,L",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 || day < 1 || day > days {
				return fmt.Errorf("--day must be between 1 and --days (got %d of %d)", day, days)
			}
			if mie < 0 {
				return fmt.Errorf("--mie must not be negative")
			}
			meals, err := mealsWithout(skip)
			if err != nil {
				return err
			}

			a := perdiem.Accrue(day-1, days, mie, meals, foreign)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "day %d of %d at %d%%\n", day, days, a.Percent)
			fmt.Fprintf(out, "  breakfast    %8.2f%s\n", a.PerMeal.Breakfast, skipped(meals.Breakfast))
			fmt.Fprintf(out, "  lunch        %8.2f%s\n", a.PerMeal.Lunch, skipped(meals.Lunch))
			fmt.Fprintf(out, "  dinner       %8.2f%s\n", a.PerMeal.Dinner, skipped(meals.Dinner))
			fmt.Fprintf(out, "  incidentals  %8.2f%s\n", a.PerMeal.Incidentals, skipped(meals.Incidentals))
			fmt.Fprintf(out, "  total        %8.2f\n", a.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "1-based day of the trip")
	cmd.Flags().IntVar(&days, "days", 1, "number of days in the trip")
	cmd.Flags().Float64Var(&mie, "mie", 0, "base M&IE rate for the day")
	cmd.Flags().BoolVar(&foreign, "foreign", false, "use the foreign ratio table")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "meals not claimed: B, L, D, I")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("mie")
	return cmd
}

// mealsWithout returns every meal claimed except the ones named in skip.
func mealsWithout(skip []string) (domain.MealFlags, error) {
	m := domain.AllMeals()
	for _, s := range skip {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "B", "BREAKFAST":
			m.Breakfast = false
		case "L", "LUNCH":
			m.Lunch = false
		case "D", "DINNER":
			m.Dinner = false
		case "I", "INCIDENTALS":
			m.Incidentals = false
		default:
			return domain.MealFlags{}, fmt.Errorf("--skip: unknown meal %q", s)
		}
	}
	return m, nil
}

func skipped(claimed bool) string {
	if claimed {
		return ""
	}
	return "  (not claimed)"
}
