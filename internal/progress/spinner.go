package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner reports a long running step. When the terminal cannot animate it
// prints nothing until the step ends, and then only the result line.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner creates a spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating with message as the suffix.
func (p *Spinner) Start(message string) {
	if !p.caps.SpinnerEnabled() {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.out))
	p.s.Suffix = " " + message
	if p.caps.SupportsColor {
		_ = p.s.Color("cyan")
	}
	p.s.Start()
}

// Success stops the spinner and prints a checkmark line.
func (p *Spinner) Success(message string) {
	p.finish(p.symbols.Checkmark, color.FgGreen, message)
}

// Fail stops the spinner and prints a failure line.
func (p *Spinner) Fail(message string) {
	p.finish(p.symbols.Failure, color.FgRed, message)
}

// Stop halts the spinner without printing a result.
func (p *Spinner) Stop() {
	if p.s != nil {
		p.s.Stop()
		p.s = nil
	}
}

func (p *Spinner) finish(symbol string, attr color.Attribute, message string) {
	started := p.s != nil
	p.Stop()
	if !started {
		return
	}
	if p.caps.SupportsColor {
		symbol = color.New(attr, color.Bold).Sprint(symbol)
	}
	fmt.Fprintf(p.out, "%s %s\n", symbol, message)
}
