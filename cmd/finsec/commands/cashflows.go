package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/finsec/leg"
)

var cashflowsCmd = &cobra.Command{
	Use:   "cashflows <book>",
	Short: "Print cashflow tables, projecting floating coupons off the book's curves",
	Args:  cobra.ExactArgs(1),
	RunE:  runCashflows,
}

func init() {
	rootCmd.AddCommand(cashflowsCmd)
}

type cashflowOutput struct {
	Name string            `json:"name"`
	Rows []leg.CashflowRow `json:"rows"`
}

func runCashflows(cmd *cobra.Command, args []string) error {
	book, port, err := loadBook(args[0])
	if err != nil {
		return err
	}
	lookup, err := book.Market()
	if err != nil {
		return err
	}
	engine, err := engineOptions()
	if err != nil {
		return err
	}
	opts := leg.CashflowOptions{AsOf: engine.AsOf(lookup), Market: lookup}

	var out []cashflowOutput
	add := func(name string, l leg.Leg) error {
		rows, err := l.CashflowTable(opts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, cashflowOutput{Name: name, Rows: rows})
		return nil
	}

	for _, l := range port.Legs {
		if err := add(l.Name, l.Value); err != nil {
			return err
		}
	}
	for _, b := range port.Bonds {
		inst, err := b.Value.Instrument()
		if err != nil {
			return fmt.Errorf("%s: %w", b.Name, err)
		}
		out = append(out, cashflowOutput{Name: b.Name, Rows: inst.CashflowTable(opts.AsOf)})
	}
	for _, s := range port.Swaps {
		for i, l := range s.Value.Legs {
			if err := add(fmt.Sprintf("%s/%d", s.Name, i), l); err != nil {
				return err
			}
		}
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
