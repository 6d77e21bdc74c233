// Package conan ties discovery, resolution and emission together for one
// build-configuration run.
package conan

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Andrepuel/conan-build/internal/buildinfo"
	"github.com/Andrepuel/conan-build/internal/directive"
	"github.com/Andrepuel/conan-build/internal/envfile"
	"github.com/Andrepuel/conan-build/internal/errs"
)

// triggerState is the rebuild-trigger state machine. The only allowed
// transition is notTriggered -> triggered; the directive must go out
// exactly once per run no matter how many resolutions happen.
type triggerState int

const (
	notTriggered triggerState = iota
	triggered
)

// Conan owns the discovered build info set for one invocation. It is not
// safe for concurrent use and is not meant to be: build configuration runs
// once, synchronously.
type Conan struct {
	set     *buildinfo.Set
	host    string
	out     *directive.Writer
	logger  *log.Logger
	trigger triggerState
}

// New discovers build infos and selects the host target from the TARGET
// variable of environ. Directives are emitted to out.
func New(dir string, environ map[string]string, logger *log.Logger, out io.Writer) (*Conan, error) {
	host, ok := environ["TARGET"]
	if !ok || host == "" {
		return nil, errs.New(errs.ErrCodeConfig, "TARGET variable must be set")
	}
	return WithHost(host, dir, environ, logger, out)
}

// WithHost is New with an explicit host triple.
func WithHost(host, dir string, environ map[string]string, logger *log.Logger, out io.Writer) (*Conan, error) {
	set, err := buildinfo.Discover(dir, environ, logger)
	if err != nil {
		return nil, err
	}
	for _, t := range set.AllTargets(host) {
		logger.Info("found build info", "target", t.Triple, "path", t.Info.Path(), "host", t.IsHost)
	}
	return &Conan{
		set:    set,
		host:   host,
		out:    directive.NewWriter(out),
		logger: logger,
	}, nil
}

// Host returns the host target triple.
func (c *Conan) Host() string {
	return c.host
}

// BuildInfo returns the build info of the host target.
func (c *Conan) BuildInfo() (*buildinfo.BuildInfo, error) {
	return c.set.Current(c.host)
}

// Targets returns every discovered target, host flagged, sorted by triple.
func (c *Conan) Targets() []buildinfo.Target {
	return c.set.AllTargets(c.host)
}

// markRerunIfChanged emits the rebuild trigger for the host manifest on
// the first call and is a no-op afterwards.
func (c *Conan) markRerunIfChanged() error {
	if c.trigger == triggered {
		return nil
	}
	info, err := c.BuildInfo()
	if err != nil {
		return err
	}
	if err := c.out.Emit(directive.RerunIfChanged{Path: info.Path()}); err != nil {
		return err
	}
	c.trigger = triggered
	return nil
}

// DependsOn resolves the named required packages against the host build
// info and emits their link directives.
func (c *Conan) DependsOn(packages []string) error {
	if err := c.markRerunIfChanged(); err != nil {
		return err
	}
	info, err := c.BuildInfo()
	if err != nil {
		return err
	}
	d, err := info.DependsOn(packages)
	if err != nil {
		return err
	}
	return d.Emit(c.out)
}

// DependsOnOptional is DependsOn for packages that may be absent.
func (c *Conan) DependsOnOptional(packages []string) error {
	if err := c.markRerunIfChanged(); err != nil {
		return err
	}
	info, err := c.BuildInfo()
	if err != nil {
		return err
	}
	d := info.DependsOnOptional(packages)
	return d.Emit(c.out)
}

// DependsOnLibcxx links the C++ standard library declared by the host
// build info settings, if any.
func (c *Conan) DependsOnLibcxx() error {
	if err := c.markRerunIfChanged(); err != nil {
		return err
	}
	info, err := c.BuildInfo()
	if err != nil {
		return err
	}
	if lib, ok := info.LibcxxLib(); ok {
		return c.out.Emit(lib)
	}
	return nil
}

// GenerateEnvSource writes env.sh and env.ps1 into dir, overwriting any
// previous run, with one section per discovered target.
func (c *Conan) GenerateEnvSource(dir string) error {
	sh, err := os.Create(filepath.Join(dir, "env.sh"))
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "creating env.sh")
	}
	defer sh.Close()
	ps1, err := os.Create(filepath.Join(dir, "env.ps1"))
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "creating env.ps1")
	}
	defer ps1.Close()

	for _, t := range c.set.AllTargets(c.host) {
		if err := envfile.Write(t.Info, t.IsHost, sh, ps1); err != nil {
			return err
		}
	}
	return nil
}
