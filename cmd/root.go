// conan-build resolves Conan build info into linker directives
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Andrepuel/conan-build/internal/conan"
	"github.com/Andrepuel/conan-build/internal/msg"
)

var (
	flagVerbose bool
	flagHost    string
)

var rootCmd = &cobra.Command{
	Use:   "conan-build",
	Short: "Resolve Conan build info into linker directives",
	Long: `Resolve Conan build info into linker directives.

conan-build discovers conanbuildinfo.json manifests in the working
directory, its ancestors and the environment, and turns their dependency
metadata into cargo-style linker directives and sourceable env scripts.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Host target triple (defaults to the TARGET variable)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger creates the diagnostics logger. Logs go to stderr; stdout
// carries only directives. The default level is Info so the discovered
// target table is always shown.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func environMap() map[string]string {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}
	return environ
}

// newConan discovers build infos for the current working directory,
// emitting directives to out. Failures here are unrecoverable.
func newConan(out io.Writer) *conan.Conan {
	cwd, err := os.Getwd()
	if err != nil {
		msg.Fatal("getwd: %v", err)
	}

	environ := environMap()
	logger := newLogger()

	var c *conan.Conan
	if flagHost != "" {
		c, err = conan.WithHost(flagHost, cwd, environ, logger, out)
	} else {
		c, err = conan.New(cwd, environ, logger, out)
	}
	if err != nil {
		msg.Fatal("%v", err)
	}
	return c
}
