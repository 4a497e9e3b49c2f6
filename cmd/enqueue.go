package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/config"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

func EnqueueCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	var (
		retries  int
		runAt    int
		timeout  int
		priority int
	)

	enqueueCmd := &cobra.Command{
		Use:   "enqueue <cmd>",
		Short: "Adds a shell command to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]
			if command == "" {
				return fmt.Errorf("command must not be empty")
			}

			maxRetries := retries
			if !cmd.Flags().Changed("retries") {
				maxRetries = cfg.MaxRetries
			}

			id, err := store.Enqueue(command, maxRetries, runAt, timeout, priority)
			if err != nil {
				return fmt.Errorf("failed to enqueue job: %w", err)
			}
			fmt.Printf("Job enqueued: %s\n", id)
			return nil
		},
	}

	enqueueCmd.Flags().IntVar(&retries, "retries", 3, "Maximum retry attempts before the job moves to the DLQ")
	enqueueCmd.Flags().IntVar(&runAt, "run-at", 0, "Delay in seconds before the job becomes eligible")
	enqueueCmd.Flags().IntVar(&timeout, "timeout", 0, "Wall-clock timeout in seconds (0 = unbounded)")
	enqueueCmd.Flags().IntVar(&priority, "priority", 0, "Higher priority jobs are claimed first")

	return enqueueCmd
}
