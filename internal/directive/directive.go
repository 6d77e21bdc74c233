// Package directive emits build-pipeline directives in the cargo build
// script protocol: one `cargo:` line per instruction on the directive
// stream, which the pipeline parses to configure the linker.
package directive

import (
	"fmt"
	"io"

	"github.com/Andrepuel/conan-build/internal/errs"
)

// Directive is a single instruction for the consuming build pipeline.
type Directive interface {
	// Line returns the directive in its exact wire syntax, without a
	// trailing newline.
	Line() string
}

// Lib instructs the pipeline to link a native library.
type Lib struct {
	Name   string
	Static bool
}

func (l Lib) Line() string {
	if l.Static {
		return "cargo:rustc-link-lib=static=" + l.Name
	}
	return "cargo:rustc-link-lib=" + l.Name
}

// LibDir instructs the pipeline to add a library search path.
type LibDir struct {
	Path string
}

func (d LibDir) Line() string {
	return "cargo:rustc-link-search=" + d.Path
}

// RerunIfChanged instructs the pipeline to re-run build configuration
// whenever the named file changes.
type RerunIfChanged struct {
	Path string
}

func (r RerunIfChanged) Line() string {
	return "cargo:rerun-if-changed=" + r.Path
}

// Writer serializes directives onto a single stream.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Emit writes one directive line. A write failure is an I/O error; the
// stream is useless after that and the caller must abort.
func (w *Writer) Emit(d Directive) error {
	if _, err := fmt.Fprintln(w.w, d.Line()); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "writing directive %q", d.Line())
	}
	return nil
}

// DependsOn accumulates the link request of one or more packages. Order is
// preserved and duplicates are kept; the consuming pipeline deduplicates.
type DependsOn struct {
	Libs    []Lib
	LibDirs []LibDir
}

// Extend appends the entries of rhs, preserving order.
func (d *DependsOn) Extend(rhs DependsOn) {
	d.Libs = append(d.Libs, rhs.Libs...)
	d.LibDirs = append(d.LibDirs, rhs.LibDirs...)
}

// Emit writes all accumulated directives, libraries first.
func (d *DependsOn) Emit(w *Writer) error {
	for _, lib := range d.Libs {
		if err := w.Emit(lib); err != nil {
			return err
		}
	}
	for _, dir := range d.LibDirs {
		if err := w.Emit(dir); err != nil {
			return err
		}
	}
	return nil
}
