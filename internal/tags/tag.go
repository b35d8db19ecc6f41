package tags

import (
	"regexp"
	"strings"
)

// Kind classifies a tag record into the small set of categories the diagram
// builders care about. Everything else is KindOther and ignored downstream.
type Kind uint8

const (
	KindOther Kind = iota
	KindFunction
	KindClass
	KindMember
	KindVariable
	KindPackage
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindMember:
		return "member"
	case KindVariable:
		return "variable"
	case KindPackage:
		return "package"
	default:
		return "other"
	}
}

// KindOf maps a ctags kind spelling (single-letter or long form) onto a Kind.
// Unknown spellings map to KindOther rather than failing: tag generators are
// free to invent kinds and the diagrams simply skip what they do not model.
func KindOf(s string) Kind {
	switch strings.ToLower(s) {
	case "f", "func", "function", "method":
		return KindFunction
	case "s", "struct", "c", "class":
		return KindClass
	case "m", "member", "anonmember", "field":
		return KindMember
	case "v", "var", "variable", "const", "constant":
		return KindVariable
	case "p", "package", "namespace", "n":
		return KindPackage
	}
	return KindOther
}

// Record is one parsed line of a ctags file.
type Record struct {
	Name      string
	File      string
	Line      uint32 // 0 when the ex-command is a pattern and no line: field exists
	Kind      Kind
	Scope     string // enclosing class/struct, "" at top level
	Package   string // package/namespace scope, "" when the tag file does not say
	Signature string
	Pattern   string   // raw search pattern from the ex-command, "" for numeric ex-commands
	Calls     []string // callees from a call-relationship field, in field order

	// Fields keeps every extension field as written, including vendor-specific
	// ones the parser does not interpret.
	Fields map[string]string
}

var receiverRe = regexp.MustCompile(`func\s*\(\s*\w+\s+\*?([A-Za-z0-9_]+)\s*\)`)

// Receiver reports the class or struct a function record belongs to. The
// explicit scope field wins; otherwise a Go method receiver is extracted from
// the signature or the search pattern. Empty for package-level functions.
func (r Record) Receiver() string {
	if r.Scope != "" {
		return r.Scope
	}
	for _, src := range []string{r.Signature, r.Pattern} {
		if m := receiverRe.FindStringSubmatch(src); m != nil {
			return m[1]
		}
	}
	return ""
}
