// conan-build env
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Andrepuel/conan-build/internal/msg"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Write env.sh and env.ps1 for all discovered targets",
	Long: `Write env.sh and env.ps1 for all discovered targets.

The scripts export one CONANBUILDINFO variable per target and, for the
host target, the library search paths needed to run binaries against
shared Conan dependencies. Existing files are overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := newConan(io.Discard)

		cwd, err := os.Getwd()
		if err != nil {
			msg.Fatal("getwd: %v", err)
		}
		if err := c.GenerateEnvSource(cwd); err != nil {
			msg.Fatal("%v", err)
		}
		fmt.Printf("%s file: env.sh\n", color.HiGreenString("Created"))
		fmt.Printf("%s file: env.ps1\n", color.HiGreenString("Created"))
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
