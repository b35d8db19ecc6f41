// Package main implements the tags2puml CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"tags2puml/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tags2puml [func|class]",
	Short: "Generate PlantUML diagrams from a ctags tag file",
	Long: `tags2puml reads a ctags-generated tag listing (tags.txt) and emits PlantUML
diagram source describing either function call relationships or package and
class structure. Rendering the diagrams is left to the PlantUML toolchain.`,
	Args: cobra.NoArgs,
	// A bare invocation generates the function diagram. An unrecognized
	// subcommand is a hard error with usage rather than a silent fallback.
	RunE: runFunc,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(funcCmd)
	rootCmd.AddCommand(classCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("tags", defaultTagsFile, "path to the ctags tag file")
	rootCmd.PersistentFlags().String("output", "", "output file (default functions.puml or classes.puml)")
	rootCmd.PersistentFlags().Bool("watch", false, "regenerate whenever the tag file changes")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
