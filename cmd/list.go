package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/engine"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

func ListCmd(store *storage.Store) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *model.JobState
			if state != "" {
				parsed, err := model.ParseJobState(state)
				if err != nil {
					return err
				}
				filter = &parsed
			}

			jobs, err := store.List(filter)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Println("ID\tSTATE\t\tATTEMPTS\tPRIORITY\tCOMMAND")
			for _, job := range jobs {
				fmt.Printf("%s\t%s\t%d\t\t%d\t\t%s\n", job.ID, job.State, job.Attempts, job.Priority, job.Command)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Filter jobs by state (pending, processing, completed, dead)")
	return cmd
}

func StatusCmd(store *storage.Store, dispatcher *engine.Dispatcher) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a summary of job states and the worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := store.CountByState()
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			fmt.Println("--- Job Queue Status ---")
			if len(stats) == 0 {
				fmt.Println("No jobs in the queue.")
			}
			for state, count := range stats {
				fmt.Printf("%s:\t%d\n", state, count)
			}

			fmt.Println("\n--- Worker Status ---")
			status, err := engine.ReadStatus(dispatcher.StatusPath)
			if err != nil {
				return fmt.Errorf("could not read worker status: %w", err)
			}
			if status == nil {
				fmt.Println("Workers:\t0 (stopped)")
				return nil
			}
			fmt.Printf("Workers:\t%d started at %v (pid %d)\n", status.Count, status.StartedAt, status.WorkerPoolPid)
			return nil
		},
	}
	return cmd
}
