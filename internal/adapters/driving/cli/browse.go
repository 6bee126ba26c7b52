package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse licenses interactively",
	Long: `Open a terminal browser over the cached licenses.

Enter shows a license filled with your saved placeholder values; t toggles
between the filled text and the raw template.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	app, err := tui.NewApp(&tui.Ports{
		Licenses: svc.Licenses,
		Fill:     svc.Fill,
	}, sess.cache)
	if err != nil {
		return err
	}

	program := tea.NewProgram(app,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = program.Run()
	return err
}
