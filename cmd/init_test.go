package cmd

import (
	"strings"
	"testing"
)

// The name argument is mandatory, so the usage line must not advertise it
// as optional.
func TestInitUsageMatchesArgs(t *testing.T) {
	if !strings.Contains(initCmd.Use, "<name>") {
		t.Errorf("Use = %q, want a required <name> argument", initCmd.Use)
	}
	if err := initCmd.Args(initCmd, nil); err == nil {
		t.Error("init without a name should be rejected")
	}
	if err := initCmd.Args(initCmd, []string{"zeromq-sys"}); err != nil {
		t.Errorf("init with a name should be accepted: %v", err)
	}
}
