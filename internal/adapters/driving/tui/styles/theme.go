// Package styles provides the colour theme shared by the CLI output and the
// license browser.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette.
type Theme struct {
	// Primary is the main accent colour, used for titles.
	Primary lipgloss.Color

	// Secondary is used for license identifiers.
	Secondary lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Permission, Condition and Limitation colour the rule categories.
	Permission lipgloss.Color
	Condition  lipgloss.Color
	Limitation lipgloss.Color

	// Token highlights placeholder tokens.
	Token lipgloss.Color

	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Permission: lipgloss.Color("#A6E3A1"), // Green
		Condition:  lipgloss.Color("#F9E2AF"), // Yellow
		Limitation: lipgloss.Color("#F38BA8"), // Red
		Token:      lipgloss.Color("#F5C2E7"), // Pink
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// ID style for SPDX identifiers.
	ID lipgloss.Style

	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Selected style for the highlighted list row.
	Selected lipgloss.Style

	Permission lipgloss.Style
	Condition  lipgloss.Style
	Limitation lipgloss.Style

	// Token style for placeholder tokens.
	Token lipgloss.Style

	// Help style for key hints.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		ID: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Permission: lipgloss.NewStyle().
			Foreground(theme.Permission),

		Condition: lipgloss.NewStyle().
			Foreground(theme.Condition),

		Limitation: lipgloss.NewStyle().
			Foreground(theme.Limitation),

		Token: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Token),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Category returns the style of a rule category.
func (s *Styles) Category(name string) lipgloss.Style {
	switch name {
	case "permissions":
		return s.Permission
	case "conditions":
		return s.Condition
	case "limitations":
		return s.Limitation
	default:
		return s.Normal
	}
}
