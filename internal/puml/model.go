// Package puml turns parsed tag records into PlantUML diagram source text.
//
// Both builders share two guarantees: the output is bracketed by @startuml and
// @enduml, and every grouping preserves first-seen input order (never sorted),
// so repeated runs over the same tag file produce byte-identical text.
package puml

import (
	"tags2puml/internal/srcfile"
	"tags2puml/internal/tags"
)

// Diagram is the result of a build: the PlantUML text plus the counts the CLI
// reports on success.
type Diagram struct {
	Text  string
	Nodes int
	Edges int
}

// pkgGroup collects everything that renders inside one package block, in
// first-seen order.
type pkgGroup struct {
	name    string
	classes []string
	funcs   []string
	vars    []string
}

// classModel is the intermediate grouping for the class diagram. It lives only
// for the duration of one build.
type classModel struct {
	packages []*pkgGroup
	byPkg    map[string]*pkgGroup

	classes  []string
	classRec map[string]tags.Record
	methods  map[string][]string
	members  map[string][]string
}

func (m *classModel) pkg(name string) *pkgGroup {
	if g, ok := m.byPkg[name]; ok {
		return g
	}
	g := &pkgGroup{name: name}
	m.byPkg[name] = g
	m.packages = append(m.packages, g)
	return g
}

// packageOf resolves the package a record belongs to: the tag file's own
// package scope field when present, the source file's package clause
// otherwise.
func packageOf(rec tags.Record, src *srcfile.Cache) string {
	if rec.Package != "" {
		return rec.Package
	}
	return src.PackageName(rec.File)
}

// buildClassModel groups records in two passes: containers first (packages,
// classes, members), then functions and variables, which need the full class
// set to decide whether they are methods.
func buildClassModel(records []tags.Record, src *srcfile.Cache) *classModel {
	m := &classModel{
		byPkg:    make(map[string]*pkgGroup),
		classRec: make(map[string]tags.Record),
		methods:  make(map[string][]string),
		members:  make(map[string][]string),
	}

	// classesByFile remembers where each class is defined so that members
	// lacking a scope field can fall back to the nearest preceding class in
	// the same file.
	classesByFile := make(map[string][]classAt)

	for _, rec := range records {
		switch rec.Kind {
		case tags.KindPackage:
			name := rec.Name
			if name == "" {
				name = packageOf(rec, src)
			}
			m.pkg(name)
		case tags.KindClass:
			if _, seen := m.classRec[rec.Name]; seen {
				continue
			}
			m.classRec[rec.Name] = rec
			m.classes = append(m.classes, rec.Name)
			g := m.pkg(packageOf(rec, src))
			g.classes = append(g.classes, rec.Name)
			classesByFile[rec.File] = append(classesByFile[rec.File], classAt{rec.Name, rec.Line})
		}
	}

	for _, rec := range records {
		switch rec.Kind {
		case tags.KindFunction:
			if recv := rec.Receiver(); recv != "" {
				if _, known := m.classRec[recv]; known {
					m.methods[recv] = append(m.methods[recv], rec.Name)
					continue
				}
			}
			g := m.pkg(packageOf(rec, src))
			g.funcs = append(g.funcs, rec.Name)
		case tags.KindVariable:
			g := m.pkg(packageOf(rec, src))
			g.vars = append(g.vars, rec.Name)
		case tags.KindMember:
			owner := rec.Scope
			if owner == "" {
				owner = enclosingClass(classesByFile[rec.File], rec.Line)
			}
			if _, known := m.classRec[owner]; known {
				m.members[owner] = append(m.members[owner], rec.Name)
			}
		}
	}

	return m
}

type classAt struct {
	name string
	line uint32
}

// enclosingClass picks the nearest class declared at or before line in the
// same file. When the member has no line number, the only class in the file
// (if there is exactly one) is assumed to own it.
func enclosingClass(classes []classAt, line uint32) string {
	if line == 0 {
		if len(classes) == 1 {
			return classes[0].name
		}
		return ""
	}
	best := ""
	var bestLine uint32
	for _, c := range classes {
		if c.line != 0 && c.line <= line && c.line >= bestLine {
			best, bestLine = c.name, c.line
		}
	}
	if best == "" && len(classes) == 1 {
		return classes[0].name
	}
	return best
}
