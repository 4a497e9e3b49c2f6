package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pranavk/queuectl/internal/engine"

	"github.com/spf13/cobra"
)

func WorkerCmd(dispatcher *engine.Dispatcher) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start one or more worker processes in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			log.Printf("Starting %d worker(s)...", count)
			log.Println("Press Ctrl+C to shut down gracefully.")

			// This context is canceled when an OS signal is received; an
			// in-flight job still runs to its natural end or its own timeout.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				sig := <-sigCh
				log.Printf("Received signal: %v. Shutting down...", sig)
				cancel()
			}()

			if err := dispatcher.StartWorkers(ctx, count); err != nil {
				return err
			}

			log.Println("All workers have shut down. Exiting.")
			return nil
		},
	}
	startCmd.Flags().Int("count", 1, "Number of workers to start")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Signal running workers to exit after their current job",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dispatcher.StopWorkers(); err != nil {
				return err
			}
			log.Println("Stop flag set. Live workers will exit after their current job.")
			return nil
		},
	}

	workerCmd.AddCommand(startCmd)
	workerCmd.AddCommand(stopCmd)
	return workerCmd
}
