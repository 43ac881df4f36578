package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/crmspace/crm/internal/platform/config"
)

// Exitf calls os.Exit, so the assertions run against a subprocess.
func TestExitfExitsWithCode1(t *testing.T) {
	if os.Getenv("CRM_TEST_EXITF") == "1" {
		config.Exitf("parse flags: %s\n", "bad port")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCode1$")
	cmd.Env = append(os.Environ(), "CRM_TEST_EXITF=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "parse flags: bad port\n") {
		t.Fatalf("expected stderr to report the failure, got %q", string(out))
	}
	if strings.Contains(string(out), "bad port\n\n") {
		t.Fatalf("expected a single trailing newline, got %q", string(out))
	}
}
