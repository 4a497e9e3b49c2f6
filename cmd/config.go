package cmd

import (
	"fmt"

	"github.com/pranavk/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

// ConfigCmd manages the store-backed runtime registry (backoff_base,
// lock_timeout, stop_workers, max_trace_bytes) — settings the engine must
// see change without a restart. Bootstrap settings (data directory,
// defaults) live in the process-level config file instead and aren't
// exposed here.
func ConfigCmd(store *storage.Store) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read or set runtime engine configuration",
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a runtime configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := store.ConfigSet(key, value); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Read a runtime configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, ok, err := store.ConfigGet(key)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("%s is unset\n", key)
				return nil
			}
			fmt.Println(value)
			return nil
		},
	}

	configCmd.AddCommand(setCmd)
	configCmd.AddCommand(getCmd)
	return configCmd
}
