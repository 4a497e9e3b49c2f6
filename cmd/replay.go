package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/engine"

	"github.com/spf13/cobra"
)

func ReplayCmd(dispatcher *engine.Dispatcher) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "replay <id>",
		Short: "Print or re-run a job's replayable command outside the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := dispatcher.Replay(args[0], confirm)
			if err != nil {
				return err
			}
			if !confirm {
				fmt.Println(command)
				return nil
			}
			fmt.Printf("Replayed: %s\n", command)
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually execute the command instead of a dry run")
	return cmd
}
