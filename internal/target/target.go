// Package target maps Conan arch/os settings to canonical target triples.
package target

import (
	"github.com/Andrepuel/conan-build/internal/errs"
)

// triples is the fixed lookup table of supported os/arch pairs. The keys
// match the values Conan writes into the settings block of a build info.
var triples = map[string]map[string]string{
	"Linux": {
		"x86_64": "x86_64-unknown-linux-gnu",
		"x86":    "i686-unknown-linux-gnu",
	},
	"Windows": {
		"x86_64": "x86_64-pc-windows-msvc",
		"x86":    "i686-pc-windows-msvc",
	},
	"Macos": {
		"armv8":  "aarch64-apple-darwin",
		"x86_64": "x86_64-apple-darwin",
	},
	"iOS": {
		"armv8": "aarch64-apple-ios",
	},
	"Android": {
		"armv8":  "aarch64-linux-android",
		"armv7":  "armv7-linux-androideabi",
		"x86":    "i686-linux-android",
		"x86_64": "x86_64-linux-android",
	},
}

// Triple returns the canonical target triple for a Conan arch/os pair.
// An unknown pair is a configuration error: without a target there is
// nothing the resolver can do.
func Triple(arch, os string) (string, error) {
	archs, ok := triples[os]
	if !ok {
		return "", errs.New(errs.ErrCodeConfig, "unsupported OS %q", os)
	}
	triple, ok := archs[arch]
	if !ok {
		return "", errs.New(errs.ErrCodeConfig, "unsupported architecture %q for OS %q", arch, os)
	}
	return triple, nil
}
