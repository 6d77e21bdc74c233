// conan-build init <name>
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Andrepuel/conan-build/internal/msg"
	"github.com/Andrepuel/conan-build/internal/project"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	}
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a conanbuild.toml in the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		writefile(`[package]
name = "`+name+`"
description = "Links native dependencies resolved by Conan."

[conan]
requires = []
optional = []
libcxx = false
`, project.FileName)

		fmt.Printf("Declare your Conan packages in %s, then run %s to emit linker directives.\n",
			project.FileName, color.HiCyanString("conan-build deps"))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
