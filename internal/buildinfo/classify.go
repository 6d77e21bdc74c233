package buildinfo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Andrepuel/conan-build/internal/errs"
)

// LinkKind says whether a library artifact is linked statically or loaded
// at runtime.
type LinkKind int

const (
	Static LinkKind = iota
	Shared
)

func (k LinkKind) String() string {
	if k == Shared {
		return "shared"
	}
	return "static"
}

// classifyLibs scans the given library search directories and maps every
// recognized library artifact to its link kind, keyed by bare library name.
//
// Later entries overwrite earlier ones with the same name, so the result
// depends on directory order. Directories are visited in the order given
// and entries within a directory in sorted name order, which makes the
// outcome deterministic even though it is not order-independent.
func classifyLibs(libDirs []string) (map[string]LinkKind, error) {
	result := make(map[string]LinkKind)
	for _, dir := range libDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeIO, err, "reading library dir %q", dir)
		}
		for _, entry := range entries {
			name, kind, ok := classifyEntry(dir, entry.Name())
			if ok {
				result[name] = kind
			}
		}
	}
	return result, nil
}

// classifyEntry inspects a single directory entry. Entries that are not
// recognizable library artifacts report ok=false and are ignored.
func classifyEntry(dir, file string) (name string, kind LinkKind, ok bool) {
	// Windows import library. Whether it is an import stub for a DLL or a
	// static archive is decided by probing the bin directory next to the
	// lib directory of the package layout (<pkgroot>/lib/foo.lib beside
	// <pkgroot>/bin/foo.dll).
	if strings.HasSuffix(file, ".lib") {
		name = strings.TrimSuffix(file, ".lib")
		dll := filepath.Join(dir, "..", "bin", name+".dll")
		if _, err := os.Stat(dll); err == nil {
			return name, Shared, true
		}
		return name, Static, true
	}

	// The archive suffix takes precedence over a .so. infix, so a name
	// like libfoo.so.a is an archive.
	switch {
	case strings.HasSuffix(file, ".a"):
		kind = Static
	case strings.HasSuffix(file, ".so") || strings.Contains(file, ".so."):
		kind = Shared
	default:
		return "", 0, false
	}

	name = strings.TrimPrefix(file, "lib")
	// libfoo.so -> foo, libfoo.so.1 -> foo, libfoo.a -> foo
	if kind == Static {
		name = strings.TrimSuffix(name, ".a")
	} else if i := strings.Index(name, ".so"); i >= 0 {
		name = name[:i]
	}
	return name, kind, true
}
