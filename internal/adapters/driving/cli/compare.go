package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [license-id...]",
	Short: "Compare the key rules of licenses side by side",
	Long: `Compare commercial use, disclosure, patent and other key rules of the given
licenses, or of every cached license when none are given.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

var (
	cell       = lipgloss.NewStyle().Padding(0, 1)
	headerCell = cell.Bold(true)
)

func runCompare(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	cmp, err := svc.Licenses.Compare(sess.cache, args)
	if err != nil {
		return err
	}
	warnMissing(cmp.Missing)

	ids := make([]string, 0, len(cmp.Rows))
	for _, row := range cmp.Rows {
		ids = append(ids, row.SPDXID)
	}

	headers := make([]string, 0, len(cmp.Rules)+1)
	headers = append(headers, "SPDX ID")
	for _, rule := range cmp.Rules {
		headers = append(headers, rule.Label)
	}

	rows := make([][]string, 0, len(cmp.Rows))
	for _, row := range cmp.Rows {
		cells := make([]string, 0, len(row.Has)+1)
		cells = append(cells, st.ID.Render(row.SPDXID))
		for _, has := range row.Has {
			if has {
				cells = append(cells, st.Permission.Render(" ✓"))
			} else {
				cells = append(cells, st.Limitation.Render(" ✗"))
			}
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Comparing: %s\n\n", st.ID.Render(strings.Join(ids, ", ")))
	fmt.Fprintln(w, st.Title.Render("Key Rule Indicators:"))
	fmt.Fprintln(w, t.Render())
	return nil
}
