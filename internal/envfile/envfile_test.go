package envfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Andrepuel/conan-build/internal/buildinfo"
)

// fixture builds a manifest with a shared zeromq, a static openssl and a
// Windows-style bin path, and returns the parsed build info.
func fixture(t *testing.T) *buildinfo.BuildInfo {
	t.Helper()
	dir := t.TempDir()

	zmqLib := filepath.Join(dir, "zmq", "lib")
	sslLib := filepath.Join(dir, "ssl", "lib")
	for _, f := range []struct{ dir, name string }{
		{zmqLib, "libzmq.so"},
		{sslLib, "libssl.a"},
		{sslLib, "libcrypto.a"},
	} {
		if err := os.MkdirAll(f.dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(f.dir, f.name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	doc := map[string]any{
		"settings": map[string]string{"arch": "x86_64", "os": "Linux"},
		"dependencies": []map[string]any{
			{
				"name":          "zeromq",
				"libs":          []string{"zmq"},
				"lib_paths":     []string{zmqLib},
				"include_paths": []string{},
				"bin_paths":     []string{`C:\zmq\bin`},
				"rootpath":      filepath.Join(dir, "zmq"),
			},
			{
				"name":          "openssl",
				"libs":          []string{"ssl", "crypto"},
				"lib_paths":     []string{sslLib},
				"include_paths": []string{},
				"bin_paths":     []string{},
				"rootpath":      filepath.Join(dir, "ssl"),
			},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, buildinfo.FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := buildinfo.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func TestWriteHost(t *testing.T) {
	info := fixture(t)
	zmqLib := filepath.Join(filepath.Dir(info.Path()), "zmq", "lib")
	sslRoot := filepath.Join(filepath.Dir(info.Path()), "ssl")

	var sh, ps1 strings.Builder
	if err := Write(info, true, &sh, &ps1); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	wantSh := "export x86_64_unknown_linux_gnu_CONANBUILDINFO=" + info.Path() + "\n" +
		"export CONANBUILDINFO=" + info.Path() + "\n" +
		"export LD_LIBRARY_PATH=" + zmqLib + "\n" +
		"export x86_64_unknown_linux_gnu_OPENSSL_DIR=" + sslRoot + "\n" +
		"export OPENSSL_DIR=" + sslRoot + "\n"
	if sh.String() != wantSh {
		t.Errorf("sh script:\n%swant:\n%s", sh.String(), wantSh)
	}

	wantPs1 := "$env:x86_64_unknown_linux_gnu_CONANBUILDINFO=\"" + info.Path() + "\"\n" +
		"$env:CONANBUILDINFO=\"" + info.Path() + "\"\n" +
		"$env:PATH=\"C:\\\\zmq\\\\bin;$env:PATH\"\n" +
		"$env:x86_64_unknown_linux_gnu_OPENSSL_DIR=\"" + sslRoot + "\"\n" +
		"$env:OPENSSL_DIR=\"" + sslRoot + "\"\n"
	if ps1.String() != wantPs1 {
		t.Errorf("ps1 script:\n%swant:\n%s", ps1.String(), wantPs1)
	}
}

// Non-host targets only get prefixed variables: their libraries must not
// leak into the loader path of the host.
func TestWriteCrossTarget(t *testing.T) {
	info := fixture(t)

	var sh, ps1 strings.Builder
	if err := Write(info, false, &sh, &ps1); err != nil {
		t.Fatal(err)
	}

	for _, banned := range []string{
		"export CONANBUILDINFO=",
		"LD_LIBRARY_PATH",
		"$env:PATH=",
		"export OPENSSL_DIR=",
		"$env:OPENSSL_DIR=",
	} {
		if strings.Contains(sh.String(), banned) || strings.Contains(ps1.String(), banned) {
			t.Errorf("cross target script should not contain %q", banned)
		}
	}
	if !strings.Contains(sh.String(), "export x86_64_unknown_linux_gnu_CONANBUILDINFO=") {
		t.Errorf("cross target script lacks prefixed manifest variable:\n%s", sh.String())
	}
	if !strings.Contains(sh.String(), "export x86_64_unknown_linux_gnu_OPENSSL_DIR=") {
		t.Errorf("cross target script lacks prefixed openssl variable:\n%s", sh.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestWriteFailurePropagates(t *testing.T) {
	info := fixture(t)

	var ps1 strings.Builder
	if err := Write(info, true, failWriter{}, &ps1); err == nil {
		t.Fatal("Write on a failing stream should error")
	}
}
