package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/config"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(_ *config.Config, st *store.Store, _ *zap.Logger) error {
			report, err := service.RunDoctor(st, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Meal total mismatches: %d\n", report.MealTotalMismatches)
			fmt.Fprintf(out, "Food set total mismatches: %d\n", report.FoodSetTotalMismatches)
			fmt.Fprintf(out, "Duplicate weight slots: %d\n", report.DuplicateWeightSlots)
			fmt.Fprintf(out, "Malformed plan days: %d\n", report.MalformedPlanDays)
			fmt.Fprintf(out, "Invalid dates: %d\n", report.InvalidDates)
			if report.Fixed {
				fmt.Fprintln(out, "Applied fixes")
				// Invalid dates are never rewritten, so check again for what remains.
				report, err = service.RunDoctor(st, false)
				if err != nil {
					return err
				}
			}
			if !report.Clean() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair totals, duplicate weight slots and plan shape")
}
