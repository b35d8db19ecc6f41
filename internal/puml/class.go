package puml

import (
	"fmt"
	"regexp"
	"strings"

	"tags2puml/internal/srcfile"
	"tags2puml/internal/tags"
)

const classDefaultSkinparam = "classAttributeIconSize 0"

// BuildClassDiagram renders one package block per namespace, one class block
// per struct/class with its methods and members nested inside, and a
// synthetic <pkg>_globals class holding the package-level functions and
// variables. Classes whose source body mentions another known class get an
// association arrow after the package blocks.
func BuildClassDiagram(records []tags.Record, src *srcfile.Cache, style Style) Diagram {
	m := buildClassModel(records, src)

	var b strings.Builder
	writeHeader(&b, style, classDefaultSkinparam)

	nodes := 0
	for _, g := range m.packages {
		fmt.Fprintf(&b, "package %s {\n", g.name)
		for _, class := range g.classes {
			nodes++
			fmt.Fprintf(&b, "  class %s {\n", class)
			for _, method := range m.methods[class] {
				fmt.Fprintf(&b, "    + %s()\n", method)
			}
			for _, member := range m.members[class] {
				fmt.Fprintf(&b, "    - %s\n", member)
			}
			b.WriteString("  }\n")
		}
		if len(g.funcs) > 0 || len(g.vars) > 0 {
			nodes++
			fmt.Fprintf(&b, "  class %s_globals {\n", g.name)
			for _, fn := range g.funcs {
				fmt.Fprintf(&b, "    + %s()\n", fn)
			}
			for _, v := range g.vars {
				fmt.Fprintf(&b, "    - %s\n", v)
			}
			b.WriteString("  }\n")
		}
		b.WriteString("}\n")
	}

	edges := writeAssociations(&b, m, src)
	b.WriteString("@enduml\n")

	return Diagram{Text: b.String(), Nodes: nodes, Edges: edges}
}

// writeAssociations scans each class body for mentions of the other known
// classes and draws src --> dst arrows, deduplicated, in declaration order.
func writeAssociations(b *strings.Builder, m *classModel, src *srcfile.Cache) int {
	mentionRe := make(map[string]*regexp.Regexp)
	mention := func(name string) *regexp.Regexp {
		re, ok := mentionRe[name]
		if !ok {
			re = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
			mentionRe[name] = re
		}
		return re
	}

	edges := 0
	for _, class := range m.classes {
		rec := m.classRec[class]
		body := src.Body(rec.File, rec.Line)
		if body == "" {
			continue
		}
		for _, other := range m.classes {
			if other == class {
				continue
			}
			if mention(other).MatchString(body) {
				fmt.Fprintf(b, "%s --> %s\n", class, other)
				edges++
			}
		}
	}
	return edges
}
