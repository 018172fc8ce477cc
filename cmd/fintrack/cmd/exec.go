package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/session"
	"fintrack/internal/ui"
)

var execCmd = &cobra.Command{
	Use:   "exec <command line>",
	Short: "Run a single ledger command and exit",
	Long: `Run one ledger command without starting the prompt. The arguments are
joined with spaces and parsed exactly like a line typed at the prompt.
Flags are only read before the command keyword, so negative amounts and
entry numbers reach the ledger unchanged. The exit status is non-zero when
the command fails.

Example:
  fintrack exec list
  fintrack exec setCatBgt c/Food 200
  fintrack --debug exec setTotBgt -5`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line := strings.Join(args, " ")
		return withSession(cmd.Context(), func(s *session.Session) error {
			if _, err := s.Execute(cmd.Context(), line); err != nil {
				return fmt.Errorf("%w: %w", errCommandFailed, err)
			}
			return nil
		}, ui.NewConsole(cmd.OutOrStdout()))
	},
}

func init() {
	execCmd.Flags().SetInterspersed(false)
}
