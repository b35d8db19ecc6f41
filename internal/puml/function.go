package puml

import (
	"fmt"
	"regexp"
	"strings"

	"tags2puml/internal/srcfile"
	"tags2puml/internal/tags"
)

// BuildFunctionDiagram renders one entity per function record and a directed
// edge per caller→callee relationship. Edges come from the tag file's own
// call-relationship field when the generator emitted one; otherwise the
// caller's source body is scanned for references to the other known
// functions. Unreadable sources simply contribute no edges.
func BuildFunctionDiagram(records []tags.Record, src *srcfile.Cache, style Style) Diagram {
	var funcs []tags.Record
	known := make(map[string]bool)
	for _, rec := range records {
		if rec.Kind != tags.KindFunction || known[rec.Name] {
			continue
		}
		known[rec.Name] = true
		funcs = append(funcs, rec)
	}

	type edge struct{ from, to string }
	var edges []edge
	seen := make(map[edge]bool)
	addEdge := func(from, to string) {
		e := edge{from, to}
		if from == to || seen[e] {
			return
		}
		seen[e] = true
		edges = append(edges, e)
	}

	callRe := make(map[string]*regexp.Regexp)
	callPattern := func(name string) *regexp.Regexp {
		re, ok := callRe[name]
		if !ok {
			re = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
			callRe[name] = re
		}
		return re
	}

	for _, caller := range funcs {
		if len(caller.Calls) > 0 {
			for _, callee := range caller.Calls {
				if known[callee] {
					addEdge(caller.Name, callee)
				}
			}
			continue
		}
		body := src.Body(caller.File, caller.Line)
		if body == "" {
			continue
		}
		for _, callee := range funcs {
			if callee.Name == caller.Name {
				continue
			}
			if callPattern(callee.Name).MatchString(body) {
				addEdge(caller.Name, callee.Name)
			}
		}
	}

	var b strings.Builder
	writeHeader(&b, style)
	for _, fn := range funcs {
		fmt.Fprintf(&b, "entity %s {}\n", fn.Name)
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "%s --> %s\n", e.from, e.to)
	}
	b.WriteString("@enduml\n")

	return Diagram{Text: b.String(), Nodes: len(funcs), Edges: len(edges)}
}
