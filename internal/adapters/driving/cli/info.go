package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

var infoCmd = &cobra.Command{
	Use:   "info <license-id>",
	Short: "Show the details of a license",
	Long: `Show a license's description, how to apply it, its permissions, conditions
and limitations, notable projects using it and the placeholders in its text.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var showPlaceholdersCmd = &cobra.Command{
	Use:   "show-placeholders <license-id>",
	Short: "List the placeholders a license template contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowPlaceholders,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(showPlaceholdersCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	rec, err := svc.Licenses.Get(sess.cache, args[0])
	if err != nil {
		return err
	}
	infos, err := svc.Licenses.Placeholders(sess.cache, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printInfoPanel(w, rec)

	fmt.Fprintln(w)
	if len(infos) == 0 {
		fmt.Fprintf(w, "%s: %s\n", st.Title.Render("Placeholders in Body"), st.Muted.Render("(None detected)"))
	} else {
		fmt.Fprintln(w, st.Title.Render("Placeholders in Body:"))
		printPlaceholders(w, infos)
	}
	return nil
}

func runShowPlaceholders(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, true)
	defer sess.persist()

	rec, err := svc.Licenses.Get(sess.cache, args[0])
	if err != nil {
		return err
	}
	infos, err := svc.Licenses.Placeholders(sess.cache, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n--- %s (%s) ---\n", st.Title.Render("Placeholders for "+rec.Title()), spdxID(rec))
	if len(infos) == 0 {
		fmt.Fprintln(w, st.Muted.Render("  (No standard [placeholder] patterns found)"))
	} else {
		printPlaceholders(w, infos)
	}
	return nil
}

func printInfoPanel(w io.Writer, rec domain.Record) {
	fmt.Fprintf(w, "\n--- %s (%s) ---\n", st.Title.Render(rec.Title()), st.Title.Render(spdxID(rec)))

	var meta domain.LicenseMetadata
	if rec.Metadata != nil {
		meta = *rec.Metadata
	}
	if meta.Nickname != "" {
		fmt.Fprintf(w, "\n%s\n", st.Normal.Italic(true).Render("Nickname: "+meta.Nickname))
	}
	printTextBlock(w, "Description", meta.Description)
	printTextBlock(w, "How to Apply", meta.How)

	for _, c := range ruleCategories(rec) {
		if len(c.rules) == 0 {
			continue
		}
		style := st.Category(c.name).Bold(true)
		fmt.Fprintf(w, "\n%s\n", style.Render(c.title+":"))
		for _, r := range c.rules {
			fmt.Fprintf(w, "  - %s (%s)\n", style.Render(r.Label), st.Muted.Render(r.Tag))
			fmt.Fprintf(w, "    %s\n", st.Muted.Italic(true).Render(shorten(r.Description, wrapWidth)))
		}
	}

	if len(meta.Using) > 0 {
		fmt.Fprintf(w, "\n%s\n", st.Title.Render("Notable Projects Using This License:"))
		projects := make([]string, 0, len(meta.Using))
		for project := range meta.Using {
			projects = append(projects, project)
		}
		sort.Strings(projects)
		for _, project := range projects {
			fmt.Fprintf(w, "  - %s: %s\n", project, meta.Using[project])
		}
	}

	printTextBlock(w, "Note", meta.Note)
}

func printTextBlock(w io.Writer, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(w, "\n%s\n", st.Title.Render(label+":"))
	fmt.Fprintln(w, wrap(text, 2))
}

func printPlaceholders(w io.Writer, infos []driving.PlaceholderInfo) {
	for _, info := range infos {
		fmt.Fprintf(w, "  - %s\n", st.Token.Render(info.RawToken))
		fmt.Fprintf(w, "    %s: %s\n", st.Muted.Render("Description"), info.Description)
		fmt.Fprintf(w, "    %s: %s\n", st.Muted.Render("Argument"), argumentHint(info))
	}
}

func argumentHint(info driving.PlaceholderInfo) string {
	if info.Flag == "" {
		return "(no direct argument)"
	}
	if info.DefaultsToYear {
		return info.Flag + " (defaults to current year)"
	}
	return info.Flag
}
