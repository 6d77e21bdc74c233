// conan-build deps [package...]
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Andrepuel/conan-build/internal/conan"
	"github.com/Andrepuel/conan-build/internal/msg"
	"github.com/Andrepuel/conan-build/internal/project"
)

var (
	flagOptional []string
	flagLibcxx   bool
)

var depsCmd = &cobra.Command{
	Use:   "deps [package...]",
	Short: "Emit linker directives for the named Conan packages",
	Long: `Emit linker directives for the named Conan packages.

Directives are written to stdout in the cargo build script protocol. With
no packages on the command line, the package set is read from the
conanbuild.toml of the current directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := newConan(os.Stdout)

		required := args
		optional := flagOptional
		libcxx := flagLibcxx

		if len(required) == 0 && len(optional) == 0 {
			if cfg := loadProjectConfig(c); cfg != nil {
				required = cfg.Conan.Requires
				optional = cfg.Conan.Optional
				libcxx = libcxx || cfg.Conan.Libcxx
			}
		}
		if len(required) == 0 && len(optional) == 0 && !libcxx {
			msg.Fatal("no packages requested; pass package names or declare them in %s", project.FileName)
		}

		if len(required) > 0 {
			if err := c.DependsOn(required); err != nil {
				msg.Fatal("%v", err)
			}
		}
		if len(optional) > 0 {
			if err := c.DependsOnOptional(optional); err != nil {
				msg.Fatal("%v", err)
			}
		}
		if libcxx {
			if err := c.DependsOnLibcxx(); err != nil {
				msg.Fatal("%v", err)
			}
		}
	},
}

// loadProjectConfig parses conanbuild.toml against the host target, or
// returns nil when the current directory has none.
func loadProjectConfig(c *conan.Conan) *project.Config {
	if _, err := os.Stat(project.FileName); err != nil {
		return nil
	}
	info, err := c.BuildInfo()
	if err != nil {
		msg.Fatal("%v", err)
	}
	env, err := project.NewConfigEnv(info, environMap())
	if err != nil {
		msg.Fatal("%v", err)
	}
	cfg, err := project.ParseConfigFromFile(project.FileName, env)
	if err != nil {
		msg.Fatal("parsing %s: %v", project.FileName, err)
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().StringSliceVar(&flagOptional, "optional", nil, "Packages to link only when present in the build info")
	depsCmd.Flags().BoolVar(&flagLibcxx, "libcxx", false, "Also link the C++ standard library")
}
