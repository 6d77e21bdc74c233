package buildinfo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"

	"github.com/Andrepuel/conan-build/internal/errs"
)

// EnvVar is the environment variable naming a build info path. Variables
// of the form <TARGET>_CONANBUILDINFO are also honored; the <TARGET> part
// is informational only, the manifest's own settings decide its triple.
const EnvVar = "CONANBUILDINFO"

// Set indexes all discovered build infos by target triple, at most one per
// triple.
type Set struct {
	info map[string]*BuildInfo
}

// Discover collects build info manifests from the filesystem and from the
// environment. It is a pure function of its inputs: dir stands in for the
// working directory, environ for the process environment.
//
// Candidate order is part of the contract, because a later candidate with
// the same triple replaces an earlier one:
//
//  1. For every ancestor of dir, outermost first: manifests inside the
//     ancestor's immediate subdirectories (sorted by name), then the
//     ancestor's own manifest.
//  2. Manifest paths from environment variables, sorted by variable name.
//
// Candidates that do not exist or cannot be probed (an unreadable sibling
// directory, say) are skipped silently. Candidates that exist but fail to
// parse, or whose settings yield no triple, are skipped with a warning;
// stray manifests elsewhere in the tree must not break discovery. An
// unlistable ancestor directory itself is a fatal I/O error.
func Discover(dir string, environ map[string]string, logger *log.Logger) (*Set, error) {
	paths, err := candidatePaths(dir, environ)
	if err != nil {
		return nil, err
	}

	set := &Set{info: make(map[string]*BuildInfo)}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		info, err := Read(path)
		if err != nil {
			logger.Warn("skipping build info", "path", path, "err", err)
			continue
		}
		triple, err := info.Triple()
		if err != nil {
			logger.Warn("skipping build info", "path", path, "err", err)
			continue
		}
		set.info[triple] = info
	}
	return set, nil
}

func candidatePaths(dir string, environ map[string]string) ([]string, error) {
	var paths []string

	for _, ancestor := range ancestors(dir) {
		// Only the ancestor itself is listed. Its entries are turned into
		// candidate paths without descending: an unreadable sibling
		// directory must stay a non-candidate, not an error, because the
		// walk reaches / and system directories like /root sit next to
		// everything.
		entries, err := os.ReadDir(ancestor)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeIO, err, "listing directory %q", ancestor)
		}
		for _, entry := range entries {
			paths = append(paths, filepath.Join(ancestor, entry.Name(), FileName))
		}
		paths = append(paths, filepath.Join(ancestor, FileName))
	}

	envKeys := maps.Keys(environ)
	slices.Sort(envKeys)
	for _, key := range envKeys {
		if key == EnvVar || strings.HasSuffix(key, "_"+EnvVar) {
			paths = append(paths, environ[key])
		}
	}

	return paths, nil
}

// ancestors returns dir and all of its parents, outermost first.
func ancestors(dir string) []string {
	var dirs []string
	dir = filepath.Clean(dir)
	for {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	slices.Reverse(dirs)
	return dirs
}

// Triples returns all indexed target triples, sorted.
func (s *Set) Triples() []string {
	triples := maps.Keys(s.info)
	slices.Sort(triples)
	return triples
}

// Current returns the build info for the host triple. Its absence is fatal
// and the error names the triples that were found, since the usual cause
// is a manifest generated for the wrong target.
func (s *Set) Current(host string) (*BuildInfo, error) {
	info, ok := s.info[host]
	if !ok {
		return nil, errs.New(errs.ErrCodeNoTarget,
			"no build info for target %q, available targets: %s",
			host, strings.Join(s.Triples(), ", "))
	}
	return info, nil
}

// Target is one entry of AllTargets.
type Target struct {
	Triple string
	IsHost bool
	Info   *BuildInfo
}

// AllTargets returns every indexed build info in sorted triple order,
// marking the one matching the host triple.
func (s *Set) AllTargets(host string) []Target {
	targets := make([]Target, 0, len(s.info))
	for _, triple := range s.Triples() {
		targets = append(targets, Target{
			Triple: triple,
			IsHost: triple == host,
			Info:   s.info[triple],
		})
	}
	return targets
}
