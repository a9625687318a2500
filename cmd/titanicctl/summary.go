package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/titanic/internal/adapters/dataset"
	"github.com/okian/titanic/internal/domain/passenger"
)

var summaryDataPath string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the aggregate statistics of a dataset file",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryDataPath, "data", "data/passengers.json", "dataset file (.json or .csv)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ps, err := dataset.LoadFile(cmd.Context(), summaryDataPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", summaryDataPath, err)
	}
	data, err := json.MarshalIndent(passenger.Summarize(ps), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
