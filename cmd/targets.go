// conan-build targets
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Andrepuel/conan-build/internal/msg"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List discovered build info targets",
	Run: func(cmd *cobra.Command, args []string) {
		c := newConan(io.Discard)

		targets := c.Targets()
		if len(targets) == 0 {
			msg.Warn("no build info found; run the Conan install first")
			return
		}

		fmt.Println("Targets:")
		w := &msg.IndentWriter{Indent: "    ", W: os.Stdout}
		for _, t := range targets {
			host := ""
			if t.IsHost {
				host = " (host)"
			}
			fmt.Fprintf(w, "%s: %s%s\n", color.HiCyanString(t.Triple), t.Info.Path(), host)
		}
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
