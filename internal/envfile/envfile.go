// Package envfile writes shell-sourceable environment scripts exposing the
// discovered build infos, one POSIX shell stream and one PowerShell stream
// written in parallel.
package envfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/Andrepuel/conan-build/internal/buildinfo"
	"github.com/Andrepuel/conan-build/internal/errs"
)

// Write appends the environment assignments of one target to both script
// streams. Non-host targets get variables prefixed with their triple
// (hyphens replaced by underscores); the host target additionally gets the
// unprefixed conventional names, which is what downstream tooling and the
// environment discovery source read back.
func Write(info *buildinfo.BuildInfo, isHost bool, sh, ps1 io.Writer) error {
	triple, err := info.Triple()
	if err != nil {
		return err
	}
	prefix := strings.ReplaceAll(triple, "-", "_")

	w := envWriter{sh: sh, ps1: ps1}

	w.export(prefix+"_"+buildinfo.EnvVar, info.Path())
	if isHost {
		w.export(buildinfo.EnvVar, info.Path())
	}

	// dependencies with at least one shared library matter for runtime
	// loading; their lib and bin dirs feed the loader search paths
	var sharedDeps []string
	for _, dep := range info.AllDeps() {
		pkg, _ := info.TryPackage(dep)
		for _, lib := range pkg.Libs {
			if info.IsShared(lib) {
				sharedDeps = append(sharedDeps, dep)
				break
			}
		}
	}

	if isHost {
		var libDirs, binDirs []string
		for _, dep := range sharedDeps {
			pkg, _ := info.TryPackage(dep)
			libDirs = append(libDirs, pkg.LibPaths...)
			binDirs = append(binDirs, pkg.BinPaths...)
		}
		if len(libDirs) > 0 {
			w.sprintf("export LD_LIBRARY_PATH=%s\n", strings.Join(libDirs, ":"))
		}
		if len(binDirs) > 0 {
			path := strings.ReplaceAll(strings.Join(binDirs, ";"), `\`, `\\`)
			w.pprintf("$env:PATH=\"%s;$env:PATH\"\n", path)
		}
	}

	// openssl's own build tooling locates the installation through
	// OPENSSL_DIR, so expose the rootpath whenever the package is present
	if openssl, ok := info.TryPackage("openssl"); ok {
		w.sprintf("export %s_OPENSSL_DIR=%s\n", prefix, openssl.Rootpath)
		w.pprintf("$env:%s_OPENSSL_DIR=\"%s\"\n", prefix, openssl.Rootpath)
		if isHost {
			w.sprintf("export OPENSSL_DIR=%s\n", openssl.Rootpath)
			w.pprintf("$env:OPENSSL_DIR=\"%s\"\n", openssl.Rootpath)
		}
	}

	return w.err
}

// envWriter writes assignments to both streams, remembering the first
// write failure so callers check once at the end.
type envWriter struct {
	sh  io.Writer
	ps1 io.Writer
	err error
}

func (w *envWriter) export(name, value string) {
	w.sprintf("export %s=%s\n", name, value)
	w.pprintf("$env:%s=\"%s\"\n", name, value)
}

func (w *envWriter) sprintf(format string, a ...any) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.sh, format, a...); err != nil {
		w.err = errs.Wrap(errs.ErrCodeIO, err, "writing shell env script")
	}
}

func (w *envWriter) pprintf(format string, a ...any) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.ps1, format, a...); err != nil {
		w.err = errs.Wrap(errs.ErrCodeIO, err, "writing powershell env script")
	}
}
