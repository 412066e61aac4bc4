package commands

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/finsec/pricing"
)

var shiftBP float64

var npvCmd = &cobra.Command{
	Use:   "npv <book>",
	Short: "Value every instrument in the book",
	Long: `Value every instrument in the book and print one position per instrument.

--shift-bp moves every curve in parallel and rebuilds the same instruments
against the bumped market.`,
	Args: cobra.ExactArgs(1),
	RunE: runNPV,
}

func init() {
	rootCmd.AddCommand(npvCmd)
	npvCmd.Flags().Float64Var(&shiftBP, "shift-bp", 0, "parallel curve shift in basis points")
}

func runNPV(cmd *cobra.Command, args []string) error {
	book, port, err := loadBook(args[0])
	if err != nil {
		return err
	}
	lookup, err := book.Market()
	if err != nil {
		return err
	}
	if shiftBP != 0 {
		if lookup, err = lookup.Shifted(shiftBP); err != nil {
			return err
		}
		log.Info().Float64("shift_bp", shiftBP).Msg("curves shifted")
	}
	engine, err := engineOptions()
	if err != nil {
		return err
	}

	positions, err := pricing.ValueAll(cmd.Context(), log, lookup, port.Jobs(engine), cfg.ValuationWorkers)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), positions)
}
