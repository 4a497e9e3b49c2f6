package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/engine"

	"github.com/spf13/cobra"
)

func ShowCmd(dispatcher *engine.Dispatcher) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a job's record and trace fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := dispatcher.Show(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("id:                 %s\n", job.ID)
			fmt.Printf("command:            %s\n", job.Command)
			fmt.Printf("replayable_command: %s\n", job.ReplayableCommand)
			fmt.Printf("state:              %s\n", job.State)
			fmt.Printf("attempts:           %d / %d\n", job.Attempts, job.MaxRetries)
			fmt.Printf("priority:           %d\n", job.Priority)
			fmt.Printf("run_after:          %s\n", job.RunAfter)
			fmt.Printf("created_at:         %s\n", job.CreatedAt)
			fmt.Printf("updated_at:         %s\n", job.UpdatedAt)
			if job.LastError != nil {
				fmt.Printf("last_error:         %s\n", *job.LastError)
			}
			if job.ExitCode != nil {
				fmt.Printf("exit_code:          %d\n", *job.ExitCode)
			} else if job.TraceCreatedAt != nil {
				fmt.Println("exit_code:          <killed by timeout>")
			}
			if job.RuntimeSec != nil {
				fmt.Printf("runtime_sec:        %d\n", *job.RuntimeSec)
			}
			if job.Stdout != nil {
				fmt.Printf("stdout:\n%s\n", *job.Stdout)
			}
			if job.Stderr != nil {
				fmt.Printf("stderr:\n%s\n", *job.Stderr)
			}
			return nil
		},
	}
}
