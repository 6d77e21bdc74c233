// Package msg prints user-facing diagnostics. Everything goes to stderr:
// stdout is reserved for the build-pipeline directive stream and must not
// carry anything else.
package msg

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func Error(format string, a ...any) {
	fmt.Fprint(os.Stderr, color.HiRedString("error"))
	fmt.Fprint(os.Stderr, ": ")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprint(os.Stderr, "\n")
}

func Warn(format string, a ...any) {
	fmt.Fprint(os.Stderr, color.YellowString("warn"))
	fmt.Fprint(os.Stderr, ": ")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprint(os.Stderr, "\n")
}

func Fatal(format string, a ...any) {
	fmt.Fprint(os.Stderr, color.RedString("fatal"))
	fmt.Fprint(os.Stderr, ": ")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprint(os.Stderr, "\n")
	os.Exit(1)
}

func Info(format string, a ...any) {
	fmt.Fprint(os.Stderr, color.HiGreenString("info"))
	fmt.Fprint(os.Stderr, ": ")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprint(os.Stderr, "\n")
}

type IndentWriter struct {
	Indent    string
	W         io.Writer
	didIndent bool
}

func (w *IndentWriter) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if !w.didIndent {
			w.W.Write([]byte(w.Indent))
			w.didIndent = true
		}
		w.W.Write([]byte{c})
		if c == '\n' || c == '\r' {
			w.didIndent = false
		}
	}
	return len(p), nil
}
