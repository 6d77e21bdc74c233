// Package buildinfo reads the conanbuildinfo.json manifests produced by
// Conan and resolves their dependency metadata into link requests.
package buildinfo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Andrepuel/conan-build/internal/errs"
	"github.com/Andrepuel/conan-build/internal/target"
)

// FileName is the manifest filename Conan writes with the json generator.
const FileName = "conanbuildinfo.json"

// PackageInfo is the per-dependency record of a build info document.
type PackageInfo struct {
	Name         string   `json:"name"`
	Libs         []string `json:"libs"`
	LibPaths     []string `json:"lib_paths"`
	IncludePaths []string `json:"include_paths"`
	BinPaths     []string `json:"bin_paths"`
	Rootpath     string   `json:"rootpath"`
}

// document is the top-level shape of conanbuildinfo.json. Fields beyond
// these are present in the file but not needed here.
type document struct {
	Dependencies []PackageInfo     `json:"dependencies"`
	Settings     map[string]string `json:"settings"`
}

// BuildInfo is one parsed build info manifest. It is read-only after Read.
type BuildInfo struct {
	path     string
	order    []string // package names in declaration order
	packages map[string]PackageInfo
	settings map[string]string
	libs     map[string]LinkKind
}

// Read parses the manifest at path. The library search directories of every
// dependency are scanned immediately so link kinds are known up front; an
// unreadable directory fails the whole read.
func Read(path string) (*BuildInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "resolving path %q", path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "reading build info %q", abs)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "invalid build info %q", abs)
	}
	if doc.Dependencies == nil || doc.Settings == nil {
		return nil, errs.New(errs.ErrCodeParse, "build info %q lacks dependencies or settings", abs)
	}

	info := &BuildInfo{
		path:     abs,
		packages: make(map[string]PackageInfo, len(doc.Dependencies)),
		settings: doc.Settings,
	}
	for _, dep := range doc.Dependencies {
		if _, seen := info.packages[dep.Name]; !seen {
			info.order = append(info.order, dep.Name)
		}
		// duplicate names: last one wins
		info.packages[dep.Name] = dep
	}

	var libDirs []string
	for _, name := range info.order {
		libDirs = append(libDirs, info.packages[name].LibPaths...)
	}
	info.libs, err = classifyLibs(libDirs)
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Path returns the absolute path this build info was read from.
func (b *BuildInfo) Path() string {
	return b.path
}

// Triple returns the canonical target triple computed from the settings
// block. Missing or unsupported arch/os settings are configuration errors.
func (b *BuildInfo) Triple() (string, error) {
	arch, ok := b.settings["arch"]
	if !ok {
		return "", errs.New(errs.ErrCodeConfig, "build info %q settings lack arch", b.path)
	}
	os, ok := b.settings["os"]
	if !ok {
		return "", errs.New(errs.ErrCodeConfig, "build info %q settings lack os", b.path)
	}
	return target.Triple(arch, os)
}

// Setting returns a raw settings value.
func (b *BuildInfo) Setting(key string) (string, bool) {
	v, ok := b.settings[key]
	return v, ok
}

// AllDeps returns every declared package name, sorted.
func (b *BuildInfo) AllDeps() []string {
	deps := slices.Clone(b.order)
	slices.Sort(deps)
	return deps
}

// Package returns the descriptor of a required dependency.
func (b *BuildInfo) Package(name string) (PackageInfo, error) {
	pkg, ok := b.packages[name]
	if !ok {
		return PackageInfo{}, errs.New(errs.ErrCodeMissingDependency, "no dependency %q in build info %q", name, b.path)
	}
	return pkg, nil
}

// TryPackage returns the descriptor of an optional dependency.
func (b *BuildInfo) TryPackage(name string) (PackageInfo, bool) {
	pkg, ok := b.packages[name]
	return pkg, ok
}

// IsShared reports whether a library links dynamically. Libraries whose
// artifacts were never found default to shared; header-only packages that
// still declare a lib name fall into this bucket, which picks the less
// strict linker flag.
func (b *BuildInfo) IsShared(lib string) bool {
	kind, ok := b.libs[lib]
	if !ok {
		return true
	}
	return kind == Shared
}

// LibcxxName returns the C++ standard library declared by the compiler
// settings, normalized to the bare linker name. The GNU runtime keeps the
// canonical "stdc++" name whatever its ABI version suffix says.
func (b *BuildInfo) LibcxxName() (string, bool) {
	libcxx, ok := b.settings["compiler.libcxx"]
	if !ok {
		return "", false
	}
	switch {
	case strings.HasPrefix(libcxx, "libstdc++"):
		return "stdc++", true
	case strings.HasPrefix(libcxx, "lib"):
		return libcxx[3:], true
	default:
		return libcxx, true
	}
}

// PackageSharedOption reads the conventional `<package>:shared` entry from
// a Conan options map. The second result is false when the option is not
// declared at all.
func PackageSharedOption(options map[string]string, pkg string) (value bool, ok bool, err error) {
	raw, ok := options[pkg+":shared"]
	if !ok {
		return false, false, nil
	}
	value, perr := strconv.ParseBool(strings.ToLower(raw))
	if perr != nil {
		return false, true, errs.Wrap(errs.ErrCodeParse, perr, "option %s:shared has value %q", pkg, raw)
	}
	return value, true, nil
}
