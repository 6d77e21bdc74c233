package buildinfo

import (
	"github.com/Andrepuel/conan-build/internal/directive"
)

// DependsOnPackage builds the link request of a single required package:
// one lib entry per declared library, one search entry per declared lib
// directory, in declaration order.
func (b *BuildInfo) DependsOnPackage(name string) (directive.DependsOn, error) {
	pkg, err := b.Package(name)
	if err != nil {
		return directive.DependsOn{}, err
	}

	var d directive.DependsOn
	for _, lib := range pkg.Libs {
		d.Libs = append(d.Libs, directive.Lib{
			Name:   lib,
			Static: !b.IsShared(lib),
		})
	}
	for _, dir := range pkg.LibPaths {
		d.LibDirs = append(d.LibDirs, directive.LibDir{Path: dir})
	}
	return d, nil
}

// DependsOn folds the link requests of all named packages, in order. Every
// package is required; an absent one fails the whole resolution.
func (b *BuildInfo) DependsOn(packages []string) (directive.DependsOn, error) {
	var all directive.DependsOn
	for _, pkg := range packages {
		d, err := b.DependsOnPackage(pkg)
		if err != nil {
			return directive.DependsOn{}, err
		}
		all.Extend(d)
	}
	return all, nil
}

// DependsOnOptional is DependsOn for packages that may legitimately be
// absent from the build info; absent ones contribute nothing.
func (b *BuildInfo) DependsOnOptional(packages []string) directive.DependsOn {
	var all directive.DependsOn
	for _, pkg := range packages {
		if _, ok := b.TryPackage(pkg); !ok {
			continue
		}
		// the package exists, resolution cannot fail
		d, _ := b.DependsOnPackage(pkg)
		all.Extend(d)
	}
	return all
}

// LibcxxLib returns the link entry for the C++ standard library, if the
// build info declares one. It is always linked dynamically.
func (b *BuildInfo) LibcxxLib() (directive.Lib, bool) {
	name, ok := b.LibcxxName()
	if !ok {
		return directive.Lib{}, false
	}
	return directive.Lib{Name: name, Static: false}, true
}
