package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

var formsCmd = &cobra.Command{
	Use:   "forms [service type]",
	Short: "List service categories and their fields",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForms,
}

func runForms(cmd *cobra.Command, args []string) error {
	types := lead.ServiceTypes
	if len(args) == 1 {
		t := lead.ServiceType(args[0])
		if !t.Valid() {
			return fmt.Errorf("unknown service type %q", args[0])
		}
		types = []lead.ServiceType{t}
	}
	out := cmd.OutOrStdout()
	for _, t := range types {
		fmt.Fprintf(out, "%s (%s)\n", t, t.FormID())
		printFields(out, t.Schema())
	}
	fmt.Fprintf(out, "Contact (%s)\n", lead.FormContact)
	printFields(out, lead.ContactSchema())
	return nil
}

func printFields(out io.Writer, specs []lead.FieldSpec) {
	for _, f := range specs {
		line := fmt.Sprintf("  %-20s %s", f.Name, f.Label)
		if len(f.Options) > 0 {
			line += " [" + strings.Join(f.Options, " | ") + "]"
		}
		if f.OtherField != "" {
			line += " other=" + f.OtherField
		}
		fmt.Fprintln(out, line)
	}
}
