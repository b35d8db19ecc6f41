package main

import (
	"github.com/spf13/cobra"
)

var funcCmd = &cobra.Command{
	Use:   "func",
	Short: "Generate the function call diagram",
	Long:  "Generate a PlantUML diagram of function call relationships into functions.puml.",
	Args:  cobra.NoArgs,
	RunE:  runFunc,
}
