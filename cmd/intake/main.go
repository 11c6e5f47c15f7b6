package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logMode string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Drive the SCG lead questionnaire from the command line",
	Long: `intake walks a lead through the two-step questionnaire and submits it
to the lead router, the same way the web form does.

Available subcommands:
  forms  - List service categories and their fields
  submit - Fill the forms from a YAML file and submit the lead`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "development", "logger mode (development or production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print state transitions")
	rootCmd.AddCommand(formsCmd, submitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
