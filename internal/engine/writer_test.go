package engine

import (
	"os"
	"path/filepath"
	"testing"

	"tsmend/internal/rules"
	"tsmend/internal/source"
)

func loadSession(t *testing.T, path string) *Session {
	t.Helper()
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return NewSession(fileSet.Get(id))
}

func TestWriteSessionSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "same.ts", "export {};\n")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	before := info.ModTime()

	s := loadSession(t, path)
	wrote, err := WriteSession(s)
	if err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if wrote {
		t.Error("unchanged session reported a write")
	}

	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(before) {
		t.Error("unchanged file was rewritten on disk")
	}
}

func TestWriteSessionWritesChanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "chain.ts", chainFixture)

	s := loadSession(t, path)
	s.ApplyBlind(assertionSet())
	if !s.Changed() {
		t.Fatal("fixture did not change")
	}

	wrote, err := WriteSession(s)
	if err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if !wrote {
		t.Fatal("changed session reported no write")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != chainFixed {
		t.Errorf("content mismatch:\ngot:\n%s\nwant:\n%s", got, chainFixed)
	}
}

func TestWriteSessionPreservesFileMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "exec.ts", chainFixture)
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}

	s := loadSession(t, path)
	s.ApplyBlind(assertionSet())
	if _, err := WriteSession(s); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteSessionLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "chain.ts", chainFixture)

	s := loadSession(t, path)
	s.ApplyBlind(rules.NewSet(rules.NewAssertionRules(rules.DefaultAssertionParams())...))
	if _, err := WriteSession(s); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			t.Errorf("stray file left in target dir: %s", e.Name())
		}
	}
}
