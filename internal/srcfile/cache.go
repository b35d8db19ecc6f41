// Package srcfile caches the source files a tag file points at. The diagram
// builders consult them for facts ctags does not record: the Go package a file
// belongs to, and function bodies for call and association scans. Every file
// is read at most once per run; unreadable files degrade the diagrams instead
// of failing them.
package srcfile

import (
	"os"
	"strings"
)

// DefaultPackage is the package name used when a source file is missing or
// carries no package clause.
const DefaultPackage = "root"

type entry struct {
	lines []string
	pkg   string
	ok    bool
}

// Cache reads source files lazily and remembers the result, including
// failures, so a file mentioned by many records is opened once.
type Cache struct {
	files   map[string]*entry
	missing []string
}

func NewCache() *Cache {
	return &Cache{files: make(map[string]*entry)}
}

func (c *Cache) load(path string) *entry {
	if e, ok := c.files[path]; ok {
		return e
	}
	e := &entry{pkg: DefaultPackage}
	data, err := os.ReadFile(path)
	if err != nil {
		c.files[path] = e
		c.missing = append(c.missing, path)
		return e
	}
	e.ok = true
	e.lines = strings.Split(string(data), "\n")
	for _, line := range e.lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "package ") {
			if fields := strings.Fields(line); len(fields) >= 2 {
				e.pkg = strings.TrimSuffix(fields[1], ";")
			}
			break
		}
	}
	c.files[path] = e
	return e
}

// PackageName reports the package clause of the file, or DefaultPackage when
// the file is unreadable or has none.
func (c *Cache) PackageName(path string) string {
	return c.load(path).pkg
}

// Body returns the file contents from the given 1-based line to EOF. It
// returns "" for unreadable files, a zero line, or a line past EOF.
func (c *Cache) Body(path string, line uint32) string {
	e := c.load(path)
	if !e.ok || line == 0 || int(line) > len(e.lines) {
		return ""
	}
	return strings.Join(e.lines[line-1:], "\n")
}

// Readable reports whether the file could be read.
func (c *Cache) Readable(path string) bool {
	return c.load(path).ok
}

// Missing lists the files that could not be read, in first-access order.
func (c *Cache) Missing() []string {
	return c.missing
}
