// Package progress reports document check progress on a terminal or in CI
// logs.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress while documents are checked. Notice lines
// (failures, warnings) are interleaved with progress without corrupting it.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Notice(format string, args ...any)
	Finish()
}

// NewReporter returns a CIReporter when running under CI and a
// TerminalReporter otherwise. Both write to stderr.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter displays a progress bar. Notices clear the bar, print
// above it, and let the next update redraw it.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Checking documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Notice(format string, args ...any) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints one line per document, suitable for CI logs.
type CIReporter struct {
	Out     io.Writer
	total   int
	notices int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Checking %d documents\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Notice(format string, args ...any) {
	r.notices++
	fmt.Fprintf(r.Out, "  "+format+"\n", args...)
}

func (r *CIReporter) Finish() {
	if r.notices > 0 {
		fmt.Fprintf(r.Out, "Document check complete, %d notices\n", r.notices)
		return
	}
	fmt.Fprintln(r.Out, "Document check complete")
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)             {}
func (Nop) Update(int, string)    {}
func (Nop) Notice(string, ...any) {}
func (Nop) Finish()               {}
