package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "zones.csv")
	if err := os.WriteFile(seed, []byte("x,y\n1,2\n3,4\nbad,row\n"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cmd := importCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{seed})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "imported=2 skipped=1" {
		t.Fatalf("expected imported=2 skipped=1, got %q", got)
	}
}

func TestImportCmd_RequiresFile(t *testing.T) {
	cmd := importCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without file argument")
	}
}
