package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

var setPlaceholderCmd = &cobra.Command{
	Use:   "set-placeholder <key> <value>",
	Short: "Save a placeholder value for later runs",
	Long: fmt.Sprintf(`Save a value that fills a placeholder whenever no flag is given for it.

Saveable keys: %s. The year is never saved.

Example:
  getlicense set-placeholder fullname "Jane Doe"`, strings.Join(domain.CacheablePlaceholderKeys(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runSetPlaceholder,
}

var getPlaceholderCmd = &cobra.Command{
	Use:   "get-placeholder [key]",
	Short: "Show saved placeholder values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGetPlaceholder,
}

var clearPlaceholdersCmd = &cobra.Command{
	Use:   "clear-placeholders [key...]",
	Short: "Remove saved placeholder values",
	Long: `Remove the given saved placeholder values, or all of them when no key
is given.`,
	RunE: runClearPlaceholders,
}

func init() {
	rootCmd.AddCommand(setPlaceholderCmd)
	rootCmd.AddCommand(getPlaceholderCmd)
	rootCmd.AddCommand(clearPlaceholdersCmd)
}

func runSetPlaceholder(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, false)
	if err := svc.Preferences.Set(sess.cache, args[0], args[1]); err != nil {
		return err
	}
	sess.dirty = true
	if err := sess.commit(); err != nil {
		return err
	}

	key := strings.ToLower(strings.TrimSpace(args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s = %q\n", st.ID.Render(key), args[1])
	return nil
}

func runGetPlaceholder(cmd *cobra.Command, args []string) error {
	sess := openSession(cmd, false)
	w := cmd.OutOrStdout()

	if len(args) == 1 {
		value, ok := svc.Preferences.Get(sess.cache, args[0])
		if !ok {
			fmt.Fprintf(w, "No saved value for '%s'.\n", args[0])
			return nil
		}
		fmt.Fprintln(w, value)
		return nil
	}

	prefs := svc.Preferences.All(sess.cache)
	if len(prefs) == 0 {
		fmt.Fprintln(w, "No saved placeholders.")
		return nil
	}
	fmt.Fprintln(w, st.Title.Render("Saved placeholders:"))
	for _, p := range prefs {
		fmt.Fprintf(w, "  %-12s %s\n", p.Key, p.Value)
	}
	return nil
}

func runClearPlaceholders(cmd *cobra.Command, args []string) error {
	for _, key := range args {
		if !domain.IsCacheablePlaceholder(strings.ToLower(strings.TrimSpace(key))) {
			return fmt.Errorf("%w: %q is not a saveable placeholder", domain.ErrInvalidInput, key)
		}
	}

	sess := openSession(cmd, false)
	cleared, missing := svc.Preferences.Clear(sess.cache, args)
	w := cmd.OutOrStdout()
	for _, key := range missing {
		fmt.Fprintf(w, "No saved value for '%s'.\n", key)
	}
	if len(cleared) == 0 {
		if len(args) == 0 {
			fmt.Fprintln(w, "No saved placeholders.")
		}
		return nil
	}

	sess.dirty = true
	if err := sess.commit(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared: %s\n", strings.Join(cleared, ", "))
	return nil
}
