package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zackaryw/eaglecore/pkg/filter"
	"github.com/zackaryw/eaglecore/pkg/snapshot"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Work with item filters",
}

var (
	filterFile string
	itemsFile  string
)

var filterEvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a filter against a JSON array of item snapshots",
	RunE:  runFilterEval,
}

func init() {
	filterEvalCmd.Flags().StringVar(&filterFile, "filter", "", "path to a filter.ItemFilter JSON document (required)")
	filterEvalCmd.Flags().StringVar(&itemsFile, "items", "", "path to a JSON array of item snapshots (required)")
	_ = filterEvalCmd.MarkFlagRequired("filter")
	_ = filterEvalCmd.MarkFlagRequired("items")
	filterCmd.AddCommand(filterEvalCmd)
}

func runFilterEval(cmd *cobra.Command, args []string) error {
	filterRaw, err := os.ReadFile(filterFile)
	if err != nil {
		return fmt.Errorf("eaglecorectl: read filter file: %w", err)
	}
	var f filter.ItemFilter
	if err := json.Unmarshal(filterRaw, &f); err != nil {
		return fmt.Errorf("eaglecorectl: parse filter file: %w", err)
	}

	itemsRaw, err := os.ReadFile(itemsFile)
	if err != nil {
		return fmt.Errorf("eaglecorectl: read items file: %w", err)
	}
	var items []snapshot.ItemSnapshot
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return fmt.Errorf("eaglecorectl: parse items file: %w", err)
	}

	matched := make([]snapshot.ItemSnapshot, 0, len(items))
	for _, item := range items {
		if filter.Evaluate(item, f) {
			matched = append(matched, item)
		}
	}

	out, err := json.MarshalIndent(matched, "", "  ")
	if err != nil {
		return fmt.Errorf("eaglecorectl: marshal matches: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
