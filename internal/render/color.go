package render

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ANSI SGR sequences. Orange has no basic code, so the 256-colour palette is used.
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiBlue   = "\x1b[34m"
	ansiOrange = "\x1b[38;5;208m"
)

// Output returns a writer for f that understands ANSI sequences on every
// platform, and whether colour should be used on it. NO_COLOR disables
// colour regardless of the terminal.
func Output(f *os.File) (io.Writer, bool) {
	if f == nil {
		return io.Discard, false
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	if !tty || noColor {
		return colorable.NewNonColorable(f), false
	}
	return colorable.NewColorable(f), true
}

// style wraps text in ANSI sequences when enabled.
type style struct {
	enabled bool
}

func (s style) paint(code, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return code + text + ansiReset
}
