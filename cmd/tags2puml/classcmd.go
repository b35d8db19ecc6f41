package main

import (
	"github.com/spf13/cobra"
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Generate the package and class structure diagram",
	Long:  "Generate a PlantUML diagram of packages, classes, members and globals into classes.puml.",
	Args:  cobra.NoArgs,
	RunE:  runClass,
}
