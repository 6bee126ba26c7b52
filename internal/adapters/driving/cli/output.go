package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/getlicense/internal/adapters/driving/tui/styles"
)

const (
	wrapWidth    = 80
	summaryWidth = 100
	ruleWidth    = 50
)

var st = styles.DefaultStyles()

// wrap word-wraps text to the terminal width with every line indented.
func wrap(text string, indent int) string {
	pad := strings.Repeat(" ", indent)
	wrapped := ansi.Wordwrap(strings.Join(strings.Fields(text), " "), wrapWidth-indent, "")
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// shorten truncates text to a one-line summary.
func shorten(text string, width int) string {
	return ansi.Truncate(strings.Join(strings.Fields(text), " "), width, "...")
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, st.Title.Render(title))
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func warnMissing(missing []string) {
	for _, id := range missing {
		svc.Log.Warn("License '%s' not found in cache. Skipping.", id)
	}
}
