package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"
)

// progressBar draws fetch progress on a terminal. On anything else it
// prints nothing.
type progressBar struct {
	w       io.Writer
	bar     progress.Model
	enabled bool
	drawn   bool
}

func newProgressBar(w io.Writer) *progressBar {
	enabled := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		enabled = term.IsTerminal(int(f.Fd()))
	}
	return &progressBar{
		w:       w,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		enabled: enabled,
	}
}

// Update redraws the bar. It matches driving.ProgressFunc.
func (p *progressBar) Update(collection string, done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%-9s %s %d/%d", collection, p.bar.ViewAs(float64(done)/float64(total)), done, total)
	p.drawn = true
}

// Done clears the bar line.
func (p *progressBar) Done() {
	if p.drawn {
		fmt.Fprint(p.w, "\r\x1b[2K")
		p.drawn = false
	}
}
