package gen

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRejectsUnknownRenameRule(t *testing.T) {
	cmd := &Cmd{Out: t.TempDir(), RenameAll: "bogus"}
	err := cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "unknown rename rule") {
		t.Fatalf("Run() = %v, want unknown rename rule error", err)
	}
}

func TestDefaultTitle(t *testing.T) {
	if got := defaultTitle(filepath.Join("some", "widget")); got != "widget" {
		t.Errorf("defaultTitle = %q, want %q", got, "widget")
	}
	if got := defaultTitle(""); got == "" {
		t.Error("defaultTitle(\"\") returned empty string")
	}
}
