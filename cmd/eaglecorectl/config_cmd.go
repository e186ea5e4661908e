package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zackaryw/eaglecore/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write the scoped configuration store",
}

var (
	configHome           string
	configStorageType    string
	configThisPluginOnly bool
	configUseLibraryName bool
	configUseLibraryUUID bool
	configPluginID       string
	configLibraryRoot    string
	configLibraryName    string
)

func addScopeFlags(cmd *cobra.Command) {
	home, _ := os.UserHomeDir()
	cmd.Flags().StringVar(&configHome, "home", home, "home directory the config store is rooted at")
	cmd.Flags().StringVar(&configStorageType, "storage", "global", "storage type: global, plugin, or library")
	cmd.Flags().BoolVar(&configThisPluginOnly, "this-plugin-only", false, "scope to the current plugin")
	cmd.Flags().BoolVar(&configUseLibraryName, "use-library-name", false, "derive the library scope key from the library name instead of its path")
	cmd.Flags().BoolVar(&configUseLibraryUUID, "use-library-uuid", false, "derive the library scope key from the library's persistent UUID")
	cmd.Flags().StringVar(&configPluginID, "plugin-id", "", "plugin id (overrides the process-wide value)")
	cmd.Flags().StringVar(&configLibraryRoot, "library-root", "", "library root path (required for --storage library)")
	cmd.Flags().StringVar(&configLibraryName, "library-name", "", "library name (required with --use-library-name)")
}

func scopeFromFlags() (config.Scope, error) {
	var storageType config.StorageType
	switch configStorageType {
	case "global":
		storageType = config.Global
	case "plugin":
		storageType = config.Plugin
	case "library":
		storageType = config.Library
	default:
		return config.Scope{}, fmt.Errorf("eaglecorectl: unknown --storage %q", configStorageType)
	}
	return config.Scope{
		StorageType:    storageType,
		ThisPluginOnly: configThisPluginOnly,
		UseLibraryName: configUseLibraryName,
		UseLibraryUUID: configUseLibraryUUID,
		PluginID:       configPluginID,
		LibraryRoot:    configLibraryRoot,
		LibraryName:    configLibraryName,
	}, nil
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read one key from a configuration scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := scopeFromFlags()
		if err != nil {
			return err
		}
		store := config.New(configHome, scope)
		value, ok, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("eaglecorectl: get: %w", err)
		}
		if !ok {
			return fmt.Errorf("eaglecorectl: key %q not set", args[0])
		}
		out, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("eaglecorectl: marshal value: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <json-value>",
	Short: "Write one key into a configuration scope",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := scopeFromFlags()
		if err != nil {
			return err
		}
		var value any
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			return fmt.Errorf("eaglecorectl: value must be valid JSON: %w", err)
		}
		store := config.New(configHome, scope)
		if err := store.Set(args[0], value); err != nil {
			return fmt.Errorf("eaglecorectl: set: %w", err)
		}
		return nil
	},
}

func init() {
	addScopeFlags(configGetCmd)
	addScopeFlags(configSetCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd)
}
