package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()

	id := fs.Add("lib/db.ts", []byte("const a = 1\nconst b = 2\n"), 0)
	if id != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id)
	}

	file := fs.Get(id)
	if file.Path != "lib/db.ts" {
		t.Errorf("expected path 'lib/db.ts', got %q", file.Path)
	}
	if len(file.LineIdx) != 2 {
		t.Errorf("expected 2 newline offsets, got %d", len(file.LineIdx))
	}

	byPath, ok := fs.GetByPath("lib/db.ts")
	if !ok {
		t.Fatal("expected GetByPath to find the file")
	}
	if byPath.ID != id {
		t.Errorf("expected ID %d, got %d", id, byPath.ID)
	}
}

func TestFileSetLoadKeepsBytesExact(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "crlf.ts")

	// BOM + CRLF: загрузка не должна менять ни байта
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("const a = 1\r\nconst b = 2\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != string(raw) {
		t.Error("expected content to be byte-identical to the file on disk")
	}
	if file.Flags&FileHasBOM == 0 {
		t.Error("expected FileHasBOM flag")
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("expected FileHasCRLF flag")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.ts", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	tests := []struct {
		lineNum uint32
		want    string
		ok      bool
	}{
		{0, "", false},
		{1, "first", true},
		{2, "second", true},
		{3, "third", true},
		{4, "", false},
	}

	for _, tt := range tests {
		got, ok := file.GetLine(tt.lineNum)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GetLine(%d) = %q, %v; want %q, %v", tt.lineNum, got, ok, tt.want, tt.ok)
		}
	}

	if file.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", file.LineCount())
	}
}

func TestGetLineEmptyFile(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("empty.ts", nil))

	if _, ok := file.GetLine(1); ok {
		t.Error("expected no lines in an empty file")
	}
	if file.LineCount() != 0 {
		t.Errorf("expected 0 lines, got %d", file.LineCount())
	}
}

func TestHashDiffersPerContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.AddVirtual("a.ts", []byte("let x = 1")))
	b := fs.Get(fs.AddVirtual("b.ts", []byte("let x = 2")))

	if a.Hash == b.Hash {
		t.Error("expected different hashes for different content")
	}
}
