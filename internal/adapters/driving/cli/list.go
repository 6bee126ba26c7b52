package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [license-id...]",
	Short: "List cached licenses",
	Long: `List the SPDX id and title of every cached license, or of the given ones.
Identifiers are matched in any casing.`,
	RunE: runList,
}

var detailedListCmd = &cobra.Command{
	Use:   "detailed-list [license-id...]",
	Short: "List licenses with their description and rules",
	RunE:  runDetailedList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailedListCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	found, missing := svc.Licenses.List(sess.cache, args)
	warnMissing(missing)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	heading(w, "Available Licenses (SPDX ID: Title):")
	if len(found) == 0 {
		fmt.Fprintln(w, st.Muted.Render("  No licenses cached. Run `getlicense sync` or check your connection."))
	}
	for _, rec := range found {
		fmt.Fprintf(w, "  %s : %s\n", st.ID.Render(fmt.Sprintf("%-25s", spdxID(rec))), rec.Title())
	}
	return nil
}

func runDetailedList(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	found, missing := svc.Licenses.List(sess.cache, args)
	warnMissing(missing)

	w := cmd.OutOrStdout()
	if len(found) == 0 {
		fmt.Fprintln(w, st.Muted.Render("No licenses cached."))
	}
	for i, rec := range found {
		printSummary(w, rec)
		if i < len(found)-1 {
			fmt.Fprintln(w, st.Muted.Render("---"))
		}
	}
	return nil
}

func printSummary(w io.Writer, rec domain.Record) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.ID.Bold(true).Render("SPDX ID: "+spdxID(rec)))
	fmt.Fprintln(w, st.Title.Render("Title: "+rec.Title()))
	if rec.Metadata == nil {
		return
	}
	if rec.Metadata.Nickname != "" {
		fmt.Fprintln(w, st.Normal.Italic(true).Render("Nickname: "+rec.Metadata.Nickname))
	}
	if rec.Metadata.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", shorten(rec.Metadata.Description, summaryWidth))
	}

	rules := ruleCategories(rec)
	for _, c := range rules {
		labels := make([]string, 0, len(c.rules))
		for _, r := range c.rules {
			labels = append(labels, r.Label)
		}
		value := st.Muted.Render("None")
		if len(labels) > 0 {
			value = strings.Join(labels, ", ")
		}
		fmt.Fprintf(w, "%s (%d): %s\n", st.Category(c.name).Bold(true).Render(c.title), len(labels), value)
	}
}

// spdxID returns the declared identifier, falling back to the cache key.
func spdxID(rec domain.Record) string {
	if rec.Metadata != nil && rec.Metadata.SPDXID != "" {
		return rec.Metadata.SPDXID
	}
	return rec.Key
}

type ruleCategory struct {
	name  string
	title string
	rules []domain.RuleDetail
}

func ruleCategories(rec domain.Record) []ruleCategory {
	var rules domain.ParsedRules
	if rec.Rules != nil {
		rules = *rec.Rules
	}
	return []ruleCategory{
		{name: domain.CategoryPermissions, title: "Permissions", rules: rules.Permissions},
		{name: domain.CategoryConditions, title: "Conditions", rules: rules.Conditions},
		{name: domain.CategoryLimitations, title: "Limitations", rules: rules.Limitations},
	}
}
