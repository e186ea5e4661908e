package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zackaryw/eaglecore/internal/libio"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect a library's on-disk document",
}

var libraryDumpRoot string

var libraryDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Read a library's metadata.json and re-print it as indented JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if libraryDumpRoot == "" {
			return fmt.Errorf("eaglecorectl: --root is required")
		}
		paths := libio.NewPaths(libraryDumpRoot)
		doc, err := libio.ReadLibraryMetadata(paths)
		if err != nil {
			return fmt.Errorf("eaglecorectl: dump library: %w", err)
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("eaglecorectl: marshal library document: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	libraryDumpCmd.Flags().StringVar(&libraryDumpRoot, "root", "", "library root directory (required)")
	_ = libraryDumpCmd.MarkFlagRequired("root")
	libraryCmd.AddCommand(libraryDumpCmd)
}
