package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tags2puml/internal/puml"
	"tags2puml/internal/srcfile"
	"tags2puml/internal/tags"
)

// Имя tags-файла по умолчанию (должен лежать в текущей директории).
const defaultTagsFile = "tags.txt"

const (
	defaultFunctionsOutput = "functions.puml"
	defaultClassesOutput   = "classes.puml"
)

type diagramMode uint8

const (
	modeFunc diagramMode = iota
	modeClass
)

func (m diagramMode) String() string {
	if m == modeClass {
		return "class"
	}
	return "func"
}

type generateOptions struct {
	mode     diagramMode
	tagsPath string
	outPath  string
	watch    bool
	quiet    bool
	color    bool
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func runFunc(cmd *cobra.Command, _ []string) error {
	return runGenerate(cmd, modeFunc)
}

func runClass(cmd *cobra.Command, _ []string) error {
	return runGenerate(cmd, modeClass)
}

func runGenerate(cmd *cobra.Command, mode diagramMode) error {
	opts, style, err := readGenerateOptions(cmd, mode)
	if err != nil {
		return err
	}
	if opts.watch {
		return watchAndGenerate(cmd, opts, style)
	}
	return generateOnce(opts, style)
}

func readGenerateOptions(cmd *cobra.Command, mode diagramMode) (generateOptions, puml.Style, error) {
	flags := cmd.Root().PersistentFlags()

	tagsPath, err := flags.GetString("tags")
	if err != nil {
		return generateOptions{}, puml.Style{}, fmt.Errorf("failed to get tags flag: %w", err)
	}
	outPath, err := flags.GetString("output")
	if err != nil {
		return generateOptions{}, puml.Style{}, fmt.Errorf("failed to get output flag: %w", err)
	}
	watch, err := flags.GetBool("watch")
	if err != nil {
		return generateOptions{}, puml.Style{}, fmt.Errorf("failed to get watch flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return generateOptions{}, puml.Style{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return generateOptions{}, puml.Style{}, fmt.Errorf("failed to get color flag: %w", err)
	}

	profile, profileFound, err := loadStyleProfile(".")
	if err != nil {
		return generateOptions{}, puml.Style{}, err
	}

	var style puml.Style
	if profileFound {
		style = profile.Config.Diagram.style()
	}
	if outPath == "" {
		outPath = defaultOutputPath(mode, profile, profileFound)
	}

	opts := generateOptions{
		mode:     mode,
		tagsPath: tagsPath,
		outPath:  outPath,
		watch:    watch,
		quiet:    quiet,
		color:    colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
	}
	return opts, style, nil
}

func defaultOutputPath(mode diagramMode, profile *styleProfile, found bool) string {
	if mode == modeClass {
		if found && profile.Config.Output.Classes != "" {
			return profile.Config.Output.Classes
		}
		return defaultClassesOutput
	}
	if found && profile.Config.Output.Functions != "" {
		return profile.Config.Output.Functions
	}
	return defaultFunctionsOutput
}

// generateOnce is the whole pipeline: parse the tag file, build the requested
// diagram, write it out. A missing tag file is the one fatal failure;
// malformed lines and unreadable source files only produce warnings.
func generateOnce(opts generateOptions, style puml.Style) error {
	records, skipped, err := tags.ParseFile(opts.tagsPath)
	if err != nil {
		return err
	}

	src := srcfile.NewCache()
	var diagram puml.Diagram
	switch opts.mode {
	case modeClass:
		diagram = puml.BuildClassDiagram(records, src, style)
	default:
		diagram = puml.BuildFunctionDiagram(records, src, style)
	}

	if err := os.WriteFile(opts.outPath, []byte(diagram.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", opts.outPath, err)
	}

	reportGenerate(opts, diagram, skipped, src.Missing())
	return nil
}

func reportGenerate(opts generateOptions, diagram puml.Diagram, skipped int, missing []string) {
	if skipped > 0 {
		fprintColored(os.Stderr, warnColor, opts.color, "warning: skipped %d malformed tag line(s)\n", skipped)
	}
	for _, path := range missing {
		fprintColored(os.Stderr, warnColor, opts.color, "warning: source file not found: %s\n", path)
	}
	if opts.quiet {
		return
	}
	switch opts.mode {
	case modeClass:
		fprintColored(os.Stdout, successColor, opts.color, "wrote %s (%d classes, %d associations)\n",
			opts.outPath, diagram.Nodes, diagram.Edges)
	default:
		fprintColored(os.Stdout, successColor, opts.color, "wrote %s (%d entities, %d edges)\n",
			opts.outPath, diagram.Nodes, diagram.Edges)
	}
}

func fprintColored(w io.Writer, c *color.Color, enabled bool, format string, args ...any) {
	if enabled {
		_, _ = c.Fprintf(w, format, args...)
		return
	}
	_, _ = fmt.Fprintf(w, format, args...)
}
