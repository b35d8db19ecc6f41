package srcfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "geom.go", "// a comment\npackage geom\n\nfunc f() {}\n")

	if got := NewCache().PackageName(path); got != "geom" {
		t.Errorf("PackageName = %q, want %q", got, "geom")
	}
}

func TestPackageName_NoClause(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.txt", "just some text\n")

	if got := NewCache().PackageName(path); got != DefaultPackage {
		t.Errorf("PackageName = %q, want %q", got, DefaultPackage)
	}
}

func TestMissingFile(t *testing.T) {
	c := NewCache()
	path := filepath.Join(t.TempDir(), "nope.go")

	if got := c.PackageName(path); got != DefaultPackage {
		t.Errorf("PackageName = %q, want %q", got, DefaultPackage)
	}
	if c.Readable(path) {
		t.Error("Readable = true for a missing file")
	}
	if got := c.Body(path, 1); got != "" {
		t.Errorf("Body = %q, want empty", got)
	}

	// Repeated lookups must not duplicate the missing entry.
	_ = c.PackageName(path)
	if missing := c.Missing(); len(missing) != 1 || missing[0] != path {
		t.Errorf("Missing = %v, want exactly [%s]", missing, path)
	}
}

func TestBody(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.go", "one\ntwo\nthree\n")
	c := NewCache()

	if got := c.Body(path, 2); got != "two\nthree\n" {
		t.Errorf("Body(2) = %q, want %q", got, "two\nthree\n")
	}
	if got := c.Body(path, 0); got != "" {
		t.Errorf("Body(0) = %q, want empty", got)
	}
	if got := c.Body(path, 99); got != "" {
		t.Errorf("Body(99) = %q, want empty", got)
	}
}
