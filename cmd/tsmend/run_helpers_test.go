package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsmend/internal/diag"
	"tsmend/internal/project"
)

func TestRestrictGroups(t *testing.T) {
	groups := []diag.FileGroup{
		{Path: "lib/a.ts"},
		{Path: "lib/b.ts"},
		{Path: "lib/sub/c.ts"},
	}

	kept := restrictGroups(groups, []string{"lib/b.ts", "./lib/sub/c.ts"})
	if len(kept) != 2 {
		t.Fatalf("kept %d groups, want 2", len(kept))
	}
	if kept[0].Path != "lib/b.ts" || kept[1].Path != "lib/sub/c.ts" {
		t.Errorf("kept = %v", kept)
	}
}

func TestRestrictGroupsNoArgsKeepsAll(t *testing.T) {
	groups := []diag.FileGroup{{Path: "a.ts"}, {Path: "b.ts"}}
	if kept := restrictGroups(groups, nil); len(kept) != 2 {
		t.Errorf("kept %d groups, want 2", len(kept))
	}
}

func TestParseTermMode(t *testing.T) {
	cases := []struct {
		in      string
		want    termMode
		wantErr bool
	}{
		{"", termModeAuto, false},
		{"auto", termModeAuto, false},
		{"ON", termModeOn, false},
		{" off ", termModeOff, false},
		{"fancy", termModeAuto, true},
	}
	for _, tc := range cases {
		got, err := parseTermMode("ui", tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTermMode(%q) accepted", tc.in)
			} else if !strings.Contains(err.Error(), "--ui") {
				t.Errorf("parseTermMode(%q) error %q does not name the flag", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTermMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTermMode(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTermModeExplicitOverrides(t *testing.T) {
	// on/off не смотрят на TTY; пишем в пайп, чтобы auto дал false.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if !termModeOn.enabled(w) {
		t.Error("on disabled on pipe")
	}
	if termModeOff.enabled(w) {
		t.Error("off enabled on pipe")
	}
	if termModeAuto.enabled(w) {
		t.Error("auto enabled on pipe")
	}
}

func TestResolveTargetsExplicitArgsWin(t *testing.T) {
	m := &project.Manifest{Root: t.TempDir(), Config: project.Default()}

	targets, err := resolveTargets(m, []string{"x.ts", "y.ts"})
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(targets) != 2 || targets[0] != "x.ts" {
		t.Errorf("targets = %v", targets)
	}
}

func TestResolveTargetsMissingScanRoot(t *testing.T) {
	m := &project.Manifest{Root: t.TempDir(), Config: project.Default()}

	if _, err := resolveTargets(m, nil); err == nil {
		t.Fatal("missing scan root accepted")
	}
}

func TestResolveTargetsWalksScanRoot(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "a.ts"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "skip.css"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	m := &project.Manifest{Root: dir, Config: project.Default()}
	targets, err := resolveTargets(m, nil)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(targets) != 1 || targets[0] != filepath.Join(lib, "a.ts") {
		t.Errorf("targets = %v", targets)
	}
}
