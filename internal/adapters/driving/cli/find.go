package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find licenses by their rules",
	Long: `Find the licenses that carry every --require tag and none of the --disallow
tags. Tags are the rule tags of rules.yml, such as commercial-use,
disclose-source or patent-use.

Examples:
  getlicense find --require commercial-use --require patent-use
  getlicense find --disallow disclose-source,same-license`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringSlice("require", nil, "rule tags every license must carry")
	findCmd.Flags().StringSlice("disallow", nil, "rule tags no license may carry")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, _ []string) error {
	require, err := cmd.Flags().GetStringSlice("require")
	if err != nil {
		return fmt.Errorf("getting require flag: %w", err)
	}
	disallow, err := cmd.Flags().GetStringSlice("disallow")
	if err != nil {
		return fmt.Errorf("getting disallow flag: %w", err)
	}

	sess := openSession(cmd, true)
	defer sess.persist()

	matches, err := svc.Licenses.Find(sess.cache, require, disallow)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Require: %s\n", tagList(require, st.Permission.Render))
	fmt.Fprintf(w, "Disallow: %s\n", tagList(disallow, st.Limitation.Render))
	fmt.Fprintln(w, st.Muted.Render(strings.Repeat("-", ruleWidth)))

	if len(matches) == 0 {
		fmt.Fprintln(w, "No licenses found matching all criteria.")
		return nil
	}
	fmt.Fprintf(w, "Found %d matching license(s):\n", len(matches))
	for _, rec := range matches {
		fmt.Fprintf(w, "  - %s (%s)\n", st.ID.Render(spdxID(rec)), rec.Title())
	}
	return nil
}

func tagList(tags []string, render func(...string) string) string {
	if len(tags) == 0 {
		return st.Muted.Render("None")
	}
	return render(strings.Join(tags, ", "))
}
