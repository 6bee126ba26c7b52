package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/getlicense/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/getlicense/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// ViewType identifies the active screen.
type ViewType int

const (
	// ViewList is the license list.
	ViewList ViewType = iota
	// ViewText is the text of the selected license.
	ViewText
)

// App browses the licenses of a loaded cache.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	cache  *domain.Cache
	styles *styles.Styles
	keys   *keymap.KeyMap

	licenses []domain.Record
	selected int

	currentView ViewType

	// raw shows the template instead of the filled preview.
	raw          bool
	lines        []string
	scrollOffset int
	err          error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser over cache.
func NewApp(ports *Ports, cache *domain.Cache) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if cache == nil {
		cache = domain.NewCache()
	}
	licenses, _ := ports.Licenses.List(cache, nil)

	return &App{
		ports:       ports,
		cache:       cache,
		styles:      styles.DefaultStyles(),
		keys:        keymap.DefaultKeyMap(),
		licenses:    licenses,
		currentView: ViewList,
		raw:         ports.Fill == nil,
		width:       80,
		height:      24,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("getlicense"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.clampScroll()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.currentView == ViewText {
			return a.updateText(msg)
		}
		return a.updateList(msg)
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.selected > 0 {
			a.selected--
		}
	case key.Matches(msg, a.keys.Down):
		if a.selected < len(a.licenses)-1 {
			a.selected++
		}
	case key.Matches(msg, a.keys.Select):
		if len(a.licenses) > 0 {
			a.currentView = ViewText
			a.scrollOffset = 0
			a.loadText()
		}
	}
	return a, nil
}

func (a *App) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.currentView = ViewList
		a.err = nil
	case key.Matches(msg, a.keys.Up):
		if a.scrollOffset > 0 {
			a.scrollOffset--
		}
	case key.Matches(msg, a.keys.Down):
		if a.scrollOffset < a.maxScrollOffset() {
			a.scrollOffset++
		}
	case key.Matches(msg, a.keys.PageUp):
		a.scrollOffset -= a.visibleLines()
		a.clampScroll()
	case key.Matches(msg, a.keys.PageDown):
		a.scrollOffset += a.visibleLines()
		a.clampScroll()
	case key.Matches(msg, a.keys.Toggle):
		if a.ports.Fill != nil {
			a.raw = !a.raw
			a.loadText()
		}
	}
	return a, nil
}

// loadText renders the selected license into lines.
func (a *App) loadText() {
	rec := a.licenses[a.selected]
	a.err = nil

	var text string
	if a.raw {
		if rec.Body != nil {
			text = a.highlightTokens(rec)
		}
	} else {
		result, err := a.ports.Fill.Preview(a.cache, rec.Key, nil)
		if err != nil {
			a.err = err
			a.lines = nil
			return
		}
		text = result.Resolution.FilledBody
	}
	a.lines = strings.Split(text, "\n")
	a.clampScroll()
}

func (a *App) highlightTokens(rec domain.Record) string {
	infos, err := a.ports.Licenses.Placeholders(a.cache, rec.Key)
	if err != nil || len(infos) == 0 {
		return *rec.Body
	}
	pairs := make([]string, 0, len(infos)*2)
	for _, info := range infos {
		pairs = append(pairs, info.RawToken, a.styles.Token.Render(info.RawToken))
	}
	return strings.NewReplacer(pairs...).Replace(*rec.Body)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.currentView == ViewText {
		return a.viewText()
	}
	return a.viewList()
}

func (a *App) viewList() string {
	if len(a.licenses) == 0 {
		return a.styles.Muted.Render("No licenses cached. Run `getlicense sync` first.") + "\n"
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(fmt.Sprintf("Licenses (%d)", len(a.licenses))))
	b.WriteString("\n\n")

	visible := a.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.selected >= visible {
		start = a.selected - visible + 1
	}
	end := start + visible
	if end > len(a.licenses) {
		end = len(a.licenses)
	}

	for i := start; i < end; i++ {
		rec := a.licenses[i]
		id := rec.Key
		if rec.Metadata != nil {
			id = rec.Metadata.SPDXID
		}
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render(fmt.Sprintf("> %-20s %s", id, rec.Title())))
		} else {
			b.WriteString("  " + a.styles.ID.Render(fmt.Sprintf("%-20s", id)) + " " + a.styles.Normal.Render(rec.Title()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.helpLine(a.keys.ListHelp()))
	return b.String()
}

func (a *App) viewText() string {
	rec := a.licenses[a.selected]

	var b strings.Builder
	mode := "filled"
	if a.raw {
		mode = "template"
	}
	b.WriteString(a.styles.Title.Render(rec.Title()))
	b.WriteString(a.styles.Muted.Render(" (" + mode + ")"))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.Limitation.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	} else {
		end := a.scrollOffset + a.visibleLines()
		if end > len(a.lines) {
			end = len(a.lines)
		}
		for _, line := range a.lines[a.scrollOffset:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.helpLine(a.keys.TextHelp()))
	return b.String()
}

func (a *App) helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return a.styles.Help.Render(strings.Join(parts, " • "))
}

func (a *App) visibleLines() int {
	// Header, blank line, blank line and help line.
	n := a.height - 4
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) maxScrollOffset() int {
	n := len(a.lines) - a.visibleLines()
	if n < 0 {
		return 0
	}
	return n
}

func (a *App) clampScroll() {
	if a.scrollOffset > a.maxScrollOffset() {
		a.scrollOffset = a.maxScrollOffset()
	}
	if a.scrollOffset < 0 {
		a.scrollOffset = 0
	}
}

// CurrentView returns the active screen.
func (a *App) CurrentView() ViewType {
	return a.currentView
}

// Selected returns the highlighted license, or false when the list is empty.
func (a *App) Selected() (domain.Record, bool) {
	if len(a.licenses) == 0 {
		return domain.Record{}, false
	}
	return a.licenses[a.selected], true
}

// ScrollOffset returns the first visible line of the license text.
func (a *App) ScrollOffset() int {
	return a.scrollOffset
}
