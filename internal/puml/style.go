package puml

import (
	"fmt"
	"strings"
)

// Style customises the diagram header. The zero value reproduces the default
// output: no title, and only the class diagram's stock skinparam line.
type Style struct {
	Title     string
	Skinparam []string
}

// writeHeader emits @startuml plus the optional title and skinparam lines.
// defaults apply only when the style supplies no skinparam of its own.
func writeHeader(b *strings.Builder, style Style, defaults ...string) {
	b.WriteString("@startuml\n")
	if style.Title != "" {
		fmt.Fprintf(b, "title %s\n", style.Title)
	}
	lines := style.Skinparam
	if len(lines) == 0 {
		lines = defaults
	}
	for _, line := range lines {
		fmt.Fprintf(b, "skinparam %s\n", line)
	}
}
