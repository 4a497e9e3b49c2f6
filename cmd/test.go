package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/engine"

	"github.com/spf13/cobra"
)

func TestCmd(dispatcher *engine.Dispatcher) *cobra.Command {
	var (
		count    int
		failRate float64
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Deterministically enqueue a bulk batch of pass/fail jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := dispatcher.EnqueueTestBatch(count, failRate)
			if err != nil {
				return err
			}
			fmt.Printf("Enqueued %d test job(s).\n", len(ids))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "Number of jobs to enqueue")
	cmd.Flags().Float64Var(&failRate, "fail-rate", 0.5, "Fraction of jobs that should fail")
	return cmd
}
