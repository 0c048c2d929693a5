package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.ts")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "file.ts")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.ts"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestFormatPath(t *testing.T) {
	tmp := t.TempDir()
	inside := filepath.Join(tmp, "lib", "db", "users.ts")

	if got := FormatPath(inside, "basename", ""); got != "users.ts" {
		t.Errorf("basename: got %q", got)
	}

	want := normalizePath(filepath.Join("lib", "db", "users.ts"))
	if got := FormatPath(inside, "relative", tmp); got != want {
		t.Errorf("relative: got %q, want %q", got, want)
	}

	if got := FormatPath("lib/a.ts", "absolute", ""); !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("absolute: got non-absolute %q", got)
	}

	// auto: короткие и относительные пути не трогаем
	if got := FormatPath("lib/a.ts", "auto", ""); got != "lib/a.ts" {
		t.Errorf("auto short: got %q", got)
	}
	long := "/very/long/absolute/path/that/keeps/going/deeper/users.ts"
	if got := FormatPath(long, "auto", ""); got != "users.ts" {
		t.Errorf("auto long: got %q", got)
	}

	// неизвестный режим — как есть
	if got := FormatPath(inside, "", ""); got != inside {
		t.Errorf("empty mode: got %q", got)
	}
}

func TestHasBOM(t *testing.T) {
	if !hasBOM([]byte{0xEF, 0xBB, 0xBF, 'a'}) {
		t.Error("expected BOM to be detected")
	}
	if hasBOM([]byte("plain")) {
		t.Error("expected no BOM in plain content")
	}
	if hasBOM([]byte{0xEF, 0xBB}) {
		t.Error("expected no BOM in truncated prefix")
	}
}

func TestHasCRLF(t *testing.T) {
	if !hasCRLF([]byte("a\r\nb")) {
		t.Error("expected CRLF to be detected")
	}
	// одиночный \r — не CRLF
	if hasCRLF([]byte("a\rb\nc")) {
		t.Error("expected lone \\r to not count as CRLF")
	}
}

func TestBuildLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("ab\ncd\n"))
	if len(idx) != 2 || idx[0] != 2 || idx[1] != 5 {
		t.Fatalf("unexpected line index: %v", idx)
	}
}
