package ascii

import (
	"fmt"
	"io"
	"strings"
)

// ProgressBar renders an in-place terminal progress bar for a bounded task.
// It writes carriage-return updates, so it should only be pointed at a
// terminal; pipe consumers should use the JSON report instead.
type ProgressBar struct {
	w       io.Writer
	label   string
	total   int
	current int
	width   int
}

// NewProgressBar creates a progress bar with the given label and total item
// count. A zero or negative total renders as an instantly complete bar.
func NewProgressBar(w io.Writer, label string, total int) *ProgressBar {
	return &ProgressBar{w: w, label: label, total: total, width: 30}
}

// Advance increments progress by one item and redraws the bar.
func (p *ProgressBar) Advance() {
	p.current++
	if p.current > p.total {
		p.current = p.total
	}
	p.draw()
}

// Finish completes the bar and terminates the line.
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.draw()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) draw() {
	pct := 100
	filled := p.width
	if p.total > 0 {
		pct = p.current * 100 / p.total
		filled = p.current * p.width / p.total
	}
	if filled > p.width {
		filled = p.width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	label := TruncateForBox(p.label, 28)
	pad := 28 - StringWidth(label)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.w, "\r%s%s [%s] %3d%%", label, strings.Repeat(" ", pad), bar, pct)
}
