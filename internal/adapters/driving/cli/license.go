package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
	"github.com/custodia-labs/getlicense/internal/core/services"
)

var licenseCmd = &cobra.Command{
	Use:   "license <license-id>",
	Short: "Write a filled license file",
	Long: `Fill the placeholders of a license template and write it to LICENSE, or to
the path given with --output.

Values given as flags are saved and reused by later runs, except the year,
which defaults to the current year.

Examples:
  getlicense license mit --fullname "Jane Doe"
  getlicense license apache-2.0 -f "Acme Inc" -y 2019 -o docs/LICENSE`,
	Args: cobra.ExactArgs(1),
	RunE: runLicense,
}

// licenseFlagKeys maps license flag names to canonical placeholder keys.
var licenseFlagKeys = map[string]string{
	"fullname":   domain.PlaceholderFullName,
	"year":       domain.PlaceholderYear,
	"project":    domain.PlaceholderProject,
	"email":      domain.PlaceholderEmail,
	"projecturl": domain.PlaceholderProjectURL,
}

func init() {
	flags := licenseCmd.Flags()
	flags.StringP("fullname", "f", "", "full name of the copyright holder")
	flags.StringP("year", "y", "", "copyright year (default current year)")
	flags.StringP("project", "p", "", "project name")
	flags.StringP("email", "e", "", "contact email")
	flags.StringP("projecturl", "u", "", "project URL")
	flags.StringP("output", "o", services.DefaultOutputPath, "output file")
	rootCmd.AddCommand(licenseCmd)
}

func runLicense(cmd *cobra.Command, args []string) error {
	explicit := make(map[string]string)
	for flag, key := range licenseFlagKeys {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return fmt.Errorf("getting %s flag: %w", flag, err)
		}
		explicit[key] = value
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("getting output flag: %w", err)
	}

	sess := openSession(cmd, true)
	defer sess.persist()

	result, err := svc.Fill.Fill(cmd.Context(), sess.cache, driving.FillRequest{
		LicenseID:  args[0],
		Explicit:   explicit,
		OutputPath: output,
	})
	if err != nil {
		return err
	}
	if result.PreferencesChanged {
		sess.dirty = true
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n--- %s written to %s ---\n", st.Title.Render(result.License.Title()), result.OutputPath)
	printValuesUsed(w, result)

	if result.PreferencesChanged {
		keys := make([]string, 0, len(result.SavedPreferences))
		for k := range result.SavedPreferences {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "\nSaved for next time: %s\n", strings.Join(keys, ", "))
	}
	return nil
}

func printValuesUsed(w io.Writer, result *driving.FillResult) {
	res := result.Resolution
	if len(res.Bindings) == 0 && len(res.Unrecognized) == 0 {
		fmt.Fprintf(w, "\n%s: %s\n", st.Title.Render("Placeholder Values Used"), st.Muted.Render("(No standard placeholders in template)"))
		return
	}

	fmt.Fprintf(w, "\n%s\n", st.Title.Render("Placeholder Values Used:"))
	for _, b := range res.Bindings {
		for _, token := range b.RawTokens {
			fmt.Fprintf(w, "  - %s: %s\n", st.Token.Render(token), describeBinding(b))
		}
	}
	for _, token := range res.Unrecognized {
		fmt.Fprintf(w, "  - %s: %s\n", st.Token.Render(token), st.Limitation.Render("Unknown placeholder (remains in file!)"))
	}
}

func describeBinding(b domain.Binding) string {
	value := fmt.Sprintf(" (Value: %q)", b.Value)
	switch b.Source {
	case domain.SourceExplicit:
		flag, _ := services.FlagFor(b.CanonicalKey)
		return st.ID.Render("CLI argument ("+flag+")") + value
	case domain.SourceSavedPreference:
		return st.Condition.Render("Saved preference (cache)") + value
	case domain.SourceComputedDefault:
		return st.ID.Render("Defaulted (current year)") + value
	default:
		flag, _ := services.FlagFor(b.CanonicalKey)
		return st.Limitation.Render("Not specified (remains in file!)") + st.Muted.Render(" use "+flag)
	}
}
