package fitlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
)

var (
	recWeight   float64
	recHeight   float64
	recAge      float64
	recSex      string
	recActivity string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print BMR and TDEE for the given body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.RecommendationInput{Sex: recSex, ActivityLevel: recActivity}
		if cmd.Flags().Changed("weight") {
			in.WeightKg = &recWeight
		}
		if cmd.Flags().Changed("height") {
			in.HeightCm = &recHeight
		}
		if cmd.Flags().Changed("age") {
			in.Age = &recAge
		}
		rec, err := service.Recommend(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "BMR: %d kcal\n", rec.BMR)
		fmt.Fprintf(cmd.OutOrStdout(), "TDEE (%s): %d kcal\n", rec.ActivityLevel, rec.TDEE)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().Float64Var(&recWeight, "weight", 0, "Body weight in kg")
	recommendCmd.Flags().Float64Var(&recHeight, "height", 0, "Height in cm")
	recommendCmd.Flags().Float64Var(&recAge, "age", 0, "Age in years")
	recommendCmd.Flags().StringVar(&recSex, "sex", "", "male or female")
	recommendCmd.Flags().StringVar(&recActivity, "activity", "", "low, light, moderate or high")
}
