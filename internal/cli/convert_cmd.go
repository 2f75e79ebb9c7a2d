package cli

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/units"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a cell value between notations",
	}
	cmd.AddCommand(newConvertWeightCmd(), newConvertIntensityCmd(), newConvertRepsCmd())
	return cmd
}

func printConverted(cmd *cobra.Command, out string) {
	if out == "" {
		out = formatter.Dim("(cleared: no conversion between these notations)")
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
}

func newConvertWeightCmd() *cobra.Command {
	from, to := domain.WeightLbs, domain.WeightKg

	cmd := &cobra.Command{
		Use:   "weight VALUE",
		Short: "Convert a load or distance, e.g. `convert weight 225 --to kg`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printConverted(cmd, units.ConvertWeight(args[0], from, to))
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&from, domain.ValidWeightTypes, "unit"), "from", "source unit")
	cmd.Flags().Var(newEnumFlag(&to, domain.ValidWeightTypes, "unit"), "to", "target unit")

	return cmd
}

func newConvertIntensityCmd() *cobra.Command {
	from, to := domain.IntensityRPE, domain.IntensityPercent

	cmd := &cobra.Command{
		Use:   "intensity VALUE",
		Short: "Convert between RPE, aRPE and percent of max",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printConverted(cmd, units.ConvertIntensity(args[0], from, to))
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&from, domain.ValidIntensityTypes, "intensityType"), "from", "source notation")
	cmd.Flags().Var(newEnumFlag(&to, domain.ValidIntensityTypes, "intensityType"), "to", "target notation")

	return cmd
}

func newConvertRepsCmd() *cobra.Command {
	from, to := domain.RepFixed, domain.RepRange

	cmd := &cobra.Command{
		Use:   "reps VALUE",
		Short: "Rewrite reps text for another rep notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := units.FormatReps(units.ConvertReps(args[0], from, to), to)
			printConverted(cmd, out)
			if err := units.ValidateReps(out, to); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(err.Error()))
			}
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&from, domain.ValidRepTypes, "repType"), "from", "source notation")
	cmd.Flags().Var(newEnumFlag(&to, domain.ValidRepTypes, "repType"), "to", "target notation")

	return cmd
}
