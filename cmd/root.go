package cmd

import (
	"log"

	"github.com/pranavk/queuectl/internal/config"
	"github.com/pranavk/queuectl/internal/engine"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "queuectl",
	Short: "A CLI-based durable job queue",
}

// Execute wires every subcommand and hands control to Cobra.
func Execute(store *storage.Store, cfg *config.Config, dispatcher *engine.Dispatcher) {
	rootCmd.AddCommand(EnqueueCmd(store, cfg))
	rootCmd.AddCommand(ListCmd(store))
	rootCmd.AddCommand(StatusCmd(store, dispatcher))
	rootCmd.AddCommand(WorkerCmd(dispatcher))
	rootCmd.AddCommand(DlqCmd(dispatcher, store))
	rootCmd.AddCommand(ConfigCmd(store))
	rootCmd.AddCommand(ShowCmd(dispatcher))
	rootCmd.AddCommand(ReplayCmd(dispatcher))
	rootCmd.AddCommand(TestCmd(dispatcher))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
