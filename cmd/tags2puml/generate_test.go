package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tags2puml/internal/puml"
)

func writeTagFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "tags.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tags.txt: %v", err)
	}
	return path
}

func TestGenerateOnce_FunctionDiagram(t *testing.T) {
	dir := t.TempDir()
	tagsPath := writeTagFile(t, dir, "foo\tmain.go\t/^func foo/;\"\tf\n")
	outPath := filepath.Join(dir, "functions.puml")

	opts := generateOptions{mode: modeFunc, tagsPath: tagsPath, outPath: outPath, quiet: true}
	if err := generateOnce(opts, puml.Style{}); err != nil {
		t.Fatalf("generateOnce error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "@startuml\n") || !strings.HasSuffix(text, "@enduml\n") {
		t.Errorf("output not bracketed: %q", text)
	}
	if !strings.Contains(text, "entity foo {}") {
		t.Errorf("missing entity foo: %q", text)
	}
}

func TestGenerateOnce_ClassDiagram(t *testing.T) {
	dir := t.TempDir()
	tagsPath := writeTagFile(t, dir,
		"Point\tpoint.go\t/^type Point struct {$/;\"\ts\n"+
			"x\tpoint.go\t/^\\tx int$/;\"\tm\tstruct:Point\n"+
			"y\tpoint.go\t/^\\ty int$/;\"\tm\tstruct:Point\n")
	outPath := filepath.Join(dir, "classes.puml")

	opts := generateOptions{mode: modeClass, tagsPath: tagsPath, outPath: outPath, quiet: true}
	if err := generateOnce(opts, puml.Style{}); err != nil {
		t.Fatalf("generateOnce error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "  class Point {\n    - x\n    - y\n  }\n") {
		t.Errorf("fields not nested under Point: %q", string(data))
	}
}

func TestGenerateOnce_MissingTagFile(t *testing.T) {
	dir := t.TempDir()
	opts := generateOptions{
		mode:     modeFunc,
		tagsPath: filepath.Join(dir, "tags.txt"),
		outPath:  filepath.Join(dir, "functions.puml"),
		quiet:    true,
	}
	if err := generateOnce(opts, puml.Style{}); err == nil {
		t.Fatal("expected error for missing tag file")
	}
}

func TestGenerateOnce_Deterministic(t *testing.T) {
	dir := t.TempDir()
	tagsPath := writeTagFile(t, dir,
		"a\tm.go\t1;\"\tf\tcalls:b\n"+
			"b\tm.go\t2;\"\tf\n")
	outPath := filepath.Join(dir, "functions.puml")
	opts := generateOptions{mode: modeFunc, tagsPath: tagsPath, outPath: outPath, quiet: true}

	if err := generateOnce(opts, puml.Style{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}
	if err := generateOnce(opts, puml.Style{}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("runs differ:\n%q\n%q", first, second)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	profile := &styleProfile{Config: profileConfig{
		Output: outputConfig{Functions: "fn.puml", Classes: "cls.puml"},
	}}
	cases := []struct {
		name    string
		mode    diagramMode
		profile *styleProfile
		found   bool
		want    string
	}{
		{"func default", modeFunc, nil, false, "functions.puml"},
		{"class default", modeClass, nil, false, "classes.puml"},
		{"func from profile", modeFunc, profile, true, "fn.puml"},
		{"class from profile", modeClass, profile, true, "cls.puml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := defaultOutputPath(tc.mode, tc.profile, tc.found); got != tc.want {
				t.Errorf("defaultOutputPath = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDiagramModeString(t *testing.T) {
	if modeFunc.String() != "func" || modeClass.String() != "class" {
		t.Errorf("mode strings = %q/%q", modeFunc.String(), modeClass.String())
	}
}
