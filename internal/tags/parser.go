package tags

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

var (
	errCommentLine  = errors.New("comment line")
	errTooFewFields = errors.New("too few fields")
)

// scope field keys that name an enclosing class-like container.
var classScopeKeys = map[string]bool{
	"struct":    true,
	"class":     true,
	"interface": true,
	"union":     true,
	"enum":      true,
}

// package scope field keys.
var packageScopeKeys = map[string]bool{
	"package":   true,
	"namespace": true,
	"module":    true,
}

// ParseLine parses a single ctags line in the extended format
//
//	name<TAB>file<TAB>excmd;"<TAB>field<TAB>field...
//
// The ex-command is either a line number or a /^pattern$/ search pattern.
// Extension fields are key:value pairs; a bare field with no colon is the
// classic short kind (e.g. "f"). Unrecognised fields are kept in Fields and
// otherwise ignored.
func ParseLine(line string) (Record, error) {
	if strings.HasPrefix(line, "!") {
		return Record{}, errCommentLine
	}

	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return Record{}, errTooFewFields
	}

	rec := Record{
		Name:   parts[0],
		File:   parts[1],
		Fields: make(map[string]string),
	}
	if rec.Name == "" || rec.File == "" {
		return Record{}, errTooFewFields
	}

	exCmd := strings.TrimSuffix(parts[2], `;"`)
	if strings.HasPrefix(exCmd, "/") {
		rec.Pattern = strings.TrimSuffix(strings.TrimPrefix(exCmd, "/"), "/")
	} else if n, err := strconv.Atoi(exCmd); err == nil {
		if ln, convErr := safecast.Conv[uint32](n); convErr == nil {
			rec.Line = ln
		}
	}

	for _, field := range parts[3:] {
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			// Classic short form: the bare field is the kind.
			if rec.Kind == KindOther {
				rec.Kind = KindOf(field)
			}
			rec.Fields["kind"] = field
			continue
		}
		rec.Fields[key] = value
		switch {
		case key == "kind":
			rec.Kind = KindOf(value)
		case key == "line":
			if n, err := strconv.Atoi(value); err == nil {
				if ln, convErr := safecast.Conv[uint32](n); convErr == nil {
					rec.Line = ln
				}
			}
		case key == "signature":
			rec.Signature = value
		case key == "calls" || key == "refs":
			for _, callee := range strings.Split(value, ",") {
				if callee = strings.TrimSpace(callee); callee != "" {
					rec.Calls = append(rec.Calls, callee)
				}
			}
		case classScopeKeys[key]:
			rec.Scope = value
		case packageScopeKeys[key]:
			rec.Package = value
		}
	}

	return rec, nil
}

// ParseReader reads a whole tag file. Malformed lines (and comment lines) are
// skipped rather than failing the run; skipped counts the malformed ones so
// the caller can warn about them. The record order is the file order.
func ParseReader(r io.Reader) (records []Record, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		rec, parseErr := ParseLine(line)
		if parseErr != nil {
			if !errors.Is(parseErr, errCommentLine) {
				skipped++
			}
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tag file: %w", err)
	}
	return records, skipped, nil
}

// ParseFile reads and parses the tag file at path. A missing or unreadable
// file is a hard error; this is the one fatal failure mode of a run.
func ParseFile(path string) ([]Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open tag file %q: %w", path, err)
	}
	defer f.Close()
	return ParseReader(f)
}
