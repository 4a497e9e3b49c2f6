package cmd

import (
	"fmt"
	"log"

	"github.com/pranavk/queuectl/internal/engine"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

func DlqCmd(dispatcher *engine.Dispatcher, store *storage.Store) *cobra.Command {
	dlqCmd := &cobra.Command{
		Use:   "dlq",
		Short: "Manage the Dead Letter Queue (DLQ)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all jobs in the DLQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			dead := model.StateDead
			jobs, err := store.List(&dead)
			if err != nil {
				return fmt.Errorf("failed to list DLQ jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("Dead Letter Queue is empty.")
				return nil
			}

			fmt.Println("ID\tATTEMPTS\tLAST_ERROR\tCOMMAND")
			for _, job := range jobs {
				lastError := ""
				if job.LastError != nil {
					lastError = *job.LastError
				}
				fmt.Printf("%s\t%d\t\t%s\t%s\n", job.ID, job.Attempts, lastError, job.Command)
			}
			return nil
		},
	}

	retryCmd := &cobra.Command{
		Use:   "retry [job-id]",
		Short: "Retry a specific job from the DLQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			if err := dispatcher.DlqRetry(jobID); err != nil {
				return err
			}
			log.Printf("Job %s moved from DLQ to 'pending' state.", jobID)
			return nil
		},
	}

	dlqCmd.AddCommand(listCmd)
	dlqCmd.AddCommand(retryCmd)
	return dlqCmd
}
