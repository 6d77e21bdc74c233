package buildinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Andrepuel/conan-build/internal/errs"
)

func touch(t *testing.T, elem ...string) {
	t.Helper()
	path := filepath.Join(elem...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClassifyUnixArtifacts(t *testing.T) {
	tests := []struct {
		file string
		lib  string
		kind LinkKind
	}{
		{"libzmq.so", "zmq", Shared},
		{"libzmq.a", "zmq", Static},
		{"libfoo.so.1", "foo", Shared},
		{"libstdthreads.a", "stdthreads", Static},
		{"plain.so", "plain", Shared},
		{"libfoo.so.a", "foo.so", Static},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.file)

			libs, err := classifyLibs([]string{dir})
			if err != nil {
				t.Fatalf("classifyLibs failed: %v", err)
			}
			kind, ok := libs[tt.lib]
			if !ok {
				t.Fatalf("library %q not classified, got %v", tt.lib, libs)
			}
			if kind != tt.kind {
				t.Errorf("%s classified %v, want %v", tt.file, kind, tt.kind)
			}
		})
	}
}

func TestClassifyIgnoresUnknownArtifacts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zmq.h")
	touch(t, dir, "zmq.pc")
	touch(t, dir, "readme.txt")

	libs, err := classifyLibs([]string{dir})
	if err != nil {
		t.Fatalf("classifyLibs failed: %v", err)
	}
	if len(libs) != 0 {
		t.Errorf("expected no classified libraries, got %v", libs)
	}
}

func TestClassifyImportLib(t *testing.T) {
	t.Run("with sibling dll", func(t *testing.T) {
		root := t.TempDir()
		touch(t, root, "pkg", "lib", "foo.lib")
		touch(t, root, "pkg", "bin", "foo.dll")

		libs, err := classifyLibs([]string{filepath.Join(root, "pkg", "lib")})
		if err != nil {
			t.Fatal(err)
		}
		if libs["foo"] != Shared {
			t.Errorf("foo.lib with ../../bin/foo.dll = %v, want Shared", libs["foo"])
		}
	})

	t.Run("without sibling dll", func(t *testing.T) {
		root := t.TempDir()
		touch(t, root, "pkg", "lib", "foo.lib")

		libs, err := classifyLibs([]string{filepath.Join(root, "pkg", "lib")})
		if err != nil {
			t.Fatal(err)
		}
		if libs["foo"] != Static {
			t.Errorf("foo.lib without dll = %v, want Static", libs["foo"])
		}
	})

	// Only the package's own bin directory is probed; a dll further up the
	// tree does not belong to the package.
	t.Run("dll outside the package layout", func(t *testing.T) {
		root := t.TempDir()
		touch(t, root, "pkg", "lib", "foo.lib")
		touch(t, root, "bin", "foo.dll")

		libs, err := classifyLibs([]string{filepath.Join(root, "pkg", "lib")})
		if err != nil {
			t.Fatal(err)
		}
		if libs["foo"] != Static {
			t.Errorf("foo.lib with unrelated dll = %v, want Static", libs["foo"])
		}
	})
}

// A name classified by two directories keeps the later classification.
// This is accepted behavior, not a defect: directory order decides.
func TestClassifyLastWriteWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, first, "libzmq.a")
	touch(t, second, "libzmq.so")

	libs, err := classifyLibs([]string{first, second})
	if err != nil {
		t.Fatal(err)
	}
	if libs["zmq"] != Shared {
		t.Errorf("later directory should win, got %v", libs["zmq"])
	}

	libs, err = classifyLibs([]string{second, first})
	if err != nil {
		t.Fatal(err)
	}
	if libs["zmq"] != Static {
		t.Errorf("later directory should win, got %v", libs["zmq"])
	}
}

func TestClassifyIdempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libzmq.so")
	touch(t, dir, "libsodium.a")

	first, err := classifyLibs([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	second, err := classifyLibs([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("classification not idempotent: %v vs %v", first, second)
	}
	for name, kind := range first {
		if second[name] != kind {
			t.Errorf("classification of %q changed: %v vs %v", name, kind, second[name])
		}
	}
}

func TestClassifyUnreadableDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	_, err := classifyLibs([]string{missing})
	if err == nil {
		t.Fatal("classifyLibs on an unreadable dir should fail")
	}
	if !errs.Is(err, errs.ErrCodeIO) {
		t.Errorf("error code = %q, want %q", errs.GetCode(err), errs.ErrCodeIO)
	}
}
