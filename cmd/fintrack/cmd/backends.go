package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the storage backends DATA_BACKEND accepts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range backend.GetBackendTypes() {
			marker := " "
			if t.String() == cfg.DataBackend {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, t)
		}
		return nil
	},
}
