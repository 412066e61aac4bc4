package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/finsec/accrual"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <book>",
	Short: "Print the accrual schedule of every leg",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

type scheduleOutput struct {
	Name     string           `json:"name"`
	Schedule accrual.Schedule `json:"schedule"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	_, port, err := loadBook(args[0])
	if err != nil {
		return err
	}

	var out []scheduleOutput
	for _, l := range port.Legs {
		out = append(out, scheduleOutput{Name: l.Name, Schedule: l.Value.Accrual.Schedule()})
	}
	for _, b := range port.Bonds {
		out = append(out, scheduleOutput{Name: b.Name, Schedule: b.Value.Leg.Accrual.Schedule()})
	}
	for _, s := range port.Swaps {
		for i, l := range s.Value.Legs {
			out = append(out, scheduleOutput{Name: fmt.Sprintf("%s/%d", s.Name, i), Schedule: l.Accrual.Schedule()})
		}
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
